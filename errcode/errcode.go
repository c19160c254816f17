// Package errcode defines the stable, allocation-free error identifiers
// returned by ring acquisition calls. Commit and release never fail; only
// acquire calls return a Code.
package errcode

// Code is a stable error identifier. It is a string newtype, comparable,
// allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes. Both are recoverable: neither mutates bookkeeper state
// beyond clearing the in-progress flag that acquire set before failing.
const (
	// GrantInProgress means the caller already holds (or leaked) an
	// outstanding grant of the requested kind. Finish or drop it first.
	GrantInProgress Code = "grant_in_progress"
	// InsufficientSize means no contiguous region of the requested size
	// exists right now. The producer should back off and wait; the
	// consumer should drain what is available or wait for more.
	InsufficientSize Code = "insufficient_size"

	Error Code = "error" // generic fallback, not returned by the ring itself
)

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return ""
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
