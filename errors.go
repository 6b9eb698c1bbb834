package jpegxs

import "github.com/jpegxs/go-jpegxs/internal/xserr"

// ErrorKind identifies one of the fatal error categories the core can raise.
// Every function that can fail returns a plain Go error; callers that need
// to branch on the failure category should use errors.As against *Error.
type ErrorKind = xserr.Kind

// The error taxonomy from spec §7. No error is recovered locally; all of
// them abort the call that raised them.
const (
	InvalidBufferSize   = xserr.InvalidBufferSize
	UnsupportedFormat   = xserr.UnsupportedFormat
	InvalidQuantization = xserr.InvalidQuantization
	InvalidProfileLevel = xserr.InvalidProfileLevel
	InvalidMarker       = xserr.InvalidMarker
	TruncatedStream     = xserr.TruncatedStream
	MalformedVlc        = xserr.MalformedVlc
	BackendUnavailable  = xserr.BackendUnavailable
)

// Error is the concrete error type returned by every fallible operation in
// this module.
type Error = xserr.Error

// New constructs an Error of the given kind with a formatted message.
func New(kind ErrorKind, format string, args ...any) error {
	return xserr.New(kind, format, args...)
}

// Wrap constructs an Error of the given kind around a causing error.
func Wrap(kind ErrorKind, cause error, format string, args ...any) error {
	return xserr.Wrap(kind, cause, format, args...)
}
