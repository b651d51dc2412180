// Package metrics defines the Prometheus collectors for the MXF reader.
//
// Collectors are registered with the default registry via promauto at package
// load. Resource backends record range-read counts, sizes, durations, and
// remote retry attempts; the decoding engine records session outcomes and
// structural diagnostics by severity.
//
// Exposing the registry over HTTP is left to the embedding application; this
// package only instruments.
package metrics
