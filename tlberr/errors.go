// Package tlberr is the single error and breadcrumb-context infrastructure
// shared by bits, codec, tlbas, cell and boc. Every parse/serialize failure
// in this module funnels through it so a caller sees one coherent chain:
// a sentinel kind at the root ("EOF", "capacity reached", ...) with a path
// of context breadcrumbs prepended on the way back up the call stack
// (".forward_payload", "[3]", "amount.VarInt", "CRC").
package tlberr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds. Callers branch on kind with errors.Is after
// unwrapping any number of Context/WithContext breadcrumbs; this package
// guarantees they all remain in the error chain pkg/errors.Cause walks.
var (
	// ErrEOF: attempted to read past the end of a bounded stream or parser.
	ErrEOF = errors.New("EOF")

	// ErrCapacity: attempted to write past a capacity cap (1023-bit cell
	// data, 4-ref cell, or an explicit LimitWriter).
	ErrCapacity = errors.New("capacity reached")

	// ErrTruncation: NBits<N> can't represent the value without loss.
	ErrTruncation = errors.New("truncation")

	// ErrInvariant: a decoded header field violates a structural constraint.
	ErrInvariant = errors.New("invariant violated")

	// ErrTagMismatch: expected const-tag or magic didn't match.
	ErrTagMismatch = errors.New("tag mismatch")

	// ErrCRCMismatch: checksum rejected the buffer.
	ErrCRCMismatch = errors.New("CRC mismatch")

	// ErrCycle: cell graph contains a cycle (serialize) or a reference
	// points backward (parse).
	ErrCycle = errors.New("cycle detected")

	// ErrAlignment: reached a code path that required byte-alignment but
	// the stream wasn't aligned.
	ErrAlignment = errors.New("alignment required")

	// ErrConversion: TryFromInto or UTF-8 decode failed.
	ErrConversion = errors.New("conversion failed")

	// ErrTrailing: unpack_fully or ensure_empty found leftover bits/refs.
	ErrTrailing = errors.New("trailing data")
)

// Custom builds an error from a message string, matching the source
// language's `Error::custom`. It carries no sentinel kind; use one of the
// Err* values above via WithContext/WithContextf when the failure matches
// a known kind so callers can branch with errors.Is.
func Custom(msg string) error {
	return errors.New(msg)
}

// Customf is the formatted form of Custom.
func Customf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}

// WithContext prepends a breadcrumb to err, e.g. WithContext(err, "[3]") or
// WithContext(err, ".forward_payload"). A nil err returns nil, so call
// sites can wrap unconditionally: `return tlberr.WithContext(err, "tag")`.
func WithContext(err error, ctx string) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, ctx)
}

// WithContextf is the formatted, eagerly-evaluated form of WithContext.
// (Go has no cheap lazy-closure equivalent of Rust's with_context(|| ...);
// formatting only happens when err != nil, which already avoids the
// allocation on every success path — see SPEC_FULL.md §4.G.)
func WithContextf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, fmt.Sprintf(format, args...))
}

// Is reports whether err's chain contains target, unwrapping any number of
// WithContext breadcrumbs.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Cause returns the innermost sentinel error in err's chain, mirroring
// pkg/errors.Cause. Useful for logging the root kind while the message
// string still carries the full breadcrumb trail.
func Cause(err error) error {
	return errors.Cause(err)
}
