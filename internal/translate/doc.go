// Package translate is the metadata translation engine between the
// catalog schema and the sidecar document schema.
//
// Every function here is pure and stateless: catalog records in, sidecar
// documents or sparse update payloads out. The forward direction
// (SeriesDocument) and the reverse direction (SeriesUpdate, BookUpdate)
// share the age-rating normalizer and lean on the volume extractor for
// per-book numbering. Network and disk stay in the syncer package.
package translate
