// Package errors provides standardized error handling patterns for hexastore packages.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// The classification integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Error Classification
//
//   - Transient: KV store unavailability, timeouts (retry recommended)
//   - Invalid: query validation failures, unreadable or malformed config files (do not retry)
//   - Fatal: triple corruption, invalid or missing configuration, unrecoverable states (stop processing)
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if !found {
//	    return errors.ErrKeyNotFound
//	}
//
// Wrap errors with context for debugging:
//
//	if err := batch.Flush(); err != nil {
//	    return errors.WrapTransient(err, "index", "Insert", "committing six-index batch")
//	}
//
// Check classification at the call site:
//
//	if err := run(); err != nil {
//	    if errors.IsTransient(err) {
//	        // retry
//	    } else if errors.IsFatal(err) {
//	        // corruption: abort the read
//	    }
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping
// (WrapTransient, WrapInvalid, WrapFatal); the generic Wrap() preserves
// the original error's classification.
package errors
