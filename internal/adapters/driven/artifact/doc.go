// Package artifact stores pipeline artifacts as JSON files on disk and
// encodes submissions for export.
//
// Artifacts are JSON arrays named <kind>_<unix timestamp>.json inside a
// single output directory. Raw issue payloads are written unmodified;
// every other artifact is written with sorted object keys so that two
// runs over the same input produce identical files.
package artifact
