package ipa

import "fmt"

// FormatError is returned by the codec when a byte slice cannot possibly
// encode a well-formed Proof: wrong length, a point that fails to decode,
// or a round count at or above the hard cap.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ipa: malformed proof encoding: %s", e.Msg)
}

// VerificationError is returned by VerificationScalars and Verify. Every
// cause collapses to this one exported type carrying a message; callers
// cannot distinguish which term of the verification equation diverged from
// the error alone, matching the "do not leak partial state" requirement for
// the final equation check. ErrVerificationFailed is the sentinel for that
// specific case; other VerificationErrors report earlier problems (size
// mismatch, oversized proof, or an L/R point that fails validation, whose
// message includes the underlying decode error).
type VerificationError struct {
	Msg string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("ipa: verification error: %s", e.Msg)
}

// ErrVerificationFailed is returned by Verify whenever the final combined
// MSM identity does not hold, regardless of which term of the equation
// actually diverged.
var ErrVerificationFailed = &VerificationError{Msg: "proof does not satisfy the verification equation"}
