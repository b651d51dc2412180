// Package resource provides a uniform, validated, random-access view over
// byte resources of known size, plus the forward-only cursor used by the
// structural metadata decoders.
//
// # Resources
//
// A Resource is an addressable blob whose total length is fixed and cached at
// construction. Three backends satisfy the same contract:
//
//	resource.NewBytesResource(data)                  // in-memory
//	resource.NewFileResource(path)                   // local file
//	resource.NewRemoteResource(ctx, cfg, bkt, key)   // S3-compatible store
//
// Ranges are zero-indexed and inclusive on both ends. Every backend runs the
// same validation before any I/O: a request is valid only when
// 0 <= start <= end <= Size()-1. Violations fail with *InvalidRangeError.
//
// # Materialized vs. streamed reads
//
// ReadRangeAsBytes materializes the range in memory and refuses requests
// larger than MaxInMemoryRange (a 31-bit byte-count ceiling) with
// *RangeTooLargeError; huge ranges must use the streaming ReadRange or the
// file-backed ReadRangeToFile on FileResource.
//
// # Cursors
//
// A ByteCursor is a sequential reader over an in-memory buffer:
//
//	cur := resource.NewByteCursor(data)
//	key, err := cur.GetBytes(16)
//	err = cur.SkipBytes(8)
//
// Reads past the end fail with *InsufficientDataError and leave the position
// unchanged. A cursor has a single owner; it is not safe for concurrent use.
//
// # Concurrency
//
// One Resource instance serves one caller at a time. Distinct instances,
// including several over the same underlying object, may be used from
// independent goroutines to decode track files in parallel.
package resource
