// Package komga is an authenticated client for the Komga media-server API.
//
// It owns the session lifecycle (create, log in once, reuse the cookie for
// every call) and the paginated listing loops for series and books, and it
// exposes sparse metadata patch payloads whose empty fields are never sent.
// Listing failures surface alongside whatever pages were already fetched so
// callers can continue on partial results.
package komga
