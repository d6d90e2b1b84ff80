package tutor

import (
	"errors"
	"fmt"
)

// ErrVerseUnavailable is the terminal result of the verse pipeline once
// the retry budget is exhausted. Callers fall back to the offline pool.
var ErrVerseUnavailable = errors.New("no verse available")

// FormatError marks a provider response that parsed as text but violates
// the required structural contract.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format violation: %s", e.Reason)
}

// ScriptError marks forbidden-script content (CJK ideographs) in a verse
// response, rejected before any parsing is attempted.
type ScriptError struct {
	Rune rune
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script violation: forbidden ideograph %q", e.Rune)
}

// IsFormatViolation reports whether err is (or wraps) a FormatError.
func IsFormatViolation(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsScriptViolation reports whether err is (or wraps) a ScriptError.
func IsScriptViolation(err error) bool {
	var se *ScriptError
	return errors.As(err, &se)
}
