// Package errorlog collects structured diagnostics for one parse session.
//
// A Log is an append-only, ordered record of ErrorObject values. Components
// add NON_FATAL diagnostics and keep going (best-effort decoding); FATAL
// diagnostics mark conditions that abort the current artifact. Callers
// snapshot Len before a risky step and check FatalSince afterwards to decide
// whether to abort.
//
// A Log is scoped to one session and is safe for concurrent use, though the
// decode pipeline itself runs sequentially.
package errorlog
