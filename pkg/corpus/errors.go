package corpus

import "errors"

var (
	// ErrJoinMismatch reports a gold-file line whose question has no
	// document-side counterpart. Silent drops here corrupt downstream
	// evaluation counts, so loads abort instead of continuing.
	ErrJoinMismatch = errors.New("gold question has no matching document entry")

	// ErrMalformedRecord reports a line that failed to parse during a
	// corpus load, where alignment must hold. Best-effort batch tools
	// may skip such lines; corpus loads must not.
	ErrMalformedRecord = errors.New("malformed corpus record")
)

// IsJoinMismatch lets callers branch on join failures with a typed check
// instead of string parsing.
func IsJoinMismatch(err error) bool {
	return errors.Is(err, ErrJoinMismatch)
}
