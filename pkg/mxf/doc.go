// Package mxf decodes the structural metadata of MXF track files used in
// IMF packages.
//
// # Overview
//
// An MXF file is a sequence of KLV (Key-Length-Value) envelopes: a 16-byte
// universal label, a BER-encoded length, and the value bytes. The header
// partition carries the structural metadata this package decodes: a primer
// pack mapping 2-byte local tags to universal labels, followed by metadata
// sets encoded as local sets (tag, length, value elements).
//
// # Decoding a track file
//
// The high-level entry point reads the header partition from any
// resource.Resource and returns the decoded object graph:
//
//	log := errorlog.NewLog()
//	hm, err := mxf.ReadHeaderMetadata(ctx, res, log)
//	if err != nil {
//	    // fatal framing problem; the log has the details
//	}
//	for _, set := range hm.Sets {
//	    // ...
//	}
//
// Decoding is best-effort: missing fields, unresolved local tags, and
// dangling references are recorded as NON_FATAL diagnostics and the decode
// continues with those elements absent. Only conditions that make further
// framing impossible (a malformed BER length, a truncated envelope) are
// FATAL and abort the artifact. Callers inspect the log afterwards to decide
// whether the partial graph is acceptable; acceptance decisions belong to
// downstream validators, not to this decoder.
//
// # Field descriptor tables
//
// Each metadata-set type is described by a static SetDescriptor: an ordered
// table of FieldDescriptor entries giving the field's universal label, its
// byte size (0 for variable), whether its span depends on a preceding count
// header, and its reference kind. One generic routine, DecodeSet, interprets
// the table; there is no per-type decode code and no runtime type
// introspection.
//
// # References
//
// Strong references are encoded as the 16-byte instance UID of the target
// set. DecodeSet wraps them as pending StrongRef values; ResolveReferences
// runs as a second pass once every set's instance UID is known and replaces
// pending references with direct, non-owning links. Resolution is
// idempotent: resolving an already-resolved graph produces identical links.
// A reference whose target is missing, or ambiguous because two sets claim
// the same UID, stays unresolved and is reported NON_FATAL; consumers treat
// an unresolved reference as absent data.
//
// # Concurrency
//
// One decode session is single-threaded. DecodeAll runs independent
// sessions over distinct resources in a worker pool; sessions share no
// mutable state.
package mxf
