// Package logging provides a simple leveled logging interface for the
// MXF reader.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//
// Output is structured (zerolog, JSON to stderr by default). The log level
// is configured via the LOG_LEVEL environment variable, or forced to debug
// with DEBUG=1. The level is resolved once, on first use.
package logging
