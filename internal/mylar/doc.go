// Package mylar defines the series.json sidecar document consumed by the
// Mylar cataloging convention, along with its file codec.
//
// The schema is fixed: every key is always serialized, with JSON null for
// absent values, and the version string must match what the consuming
// tool expects. Building documents from catalog data is the translate
// package's job; this package only owns the shape and the bytes.
package mylar
