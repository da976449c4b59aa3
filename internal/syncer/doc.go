// Package syncer sequences the two sync directions between a Komga library
// and Mylar series.json sidecar files.
//
// Export fetches series, filters out the inapplicable ones, translates the
// rest, and writes one sidecar per series. Import reads the sidecars back
// and pushes sparse metadata patches for series and books. The package owns
// run locking, path remapping, skip policy, and journal bookkeeping; all
// field mapping lives in the translate package.
package syncer
