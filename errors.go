package isv

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural reports input that breaks an assumption the decoders
	// rely on. It aborts the whole conversion.
	ErrStructural = errors.New("structural assumption violated")
	// ErrMalformedRecord reports a source line that cannot be split into
	// its columns or decoded.
	ErrMalformedRecord = errors.New("malformed source record")
)

// StructuralError describes where a decoder gave up.
type StructuralError struct {
	Headword string
	// Section is the part of the table being decoded, e.g. "prap".
	Section string
	Detail  string
}

func (e *StructuralError) Error() string {
	if e.Headword == "" {
		return fmt.Sprintf("%s: %s: %s", ErrStructural, e.Section, e.Detail)
	}
	return fmt.Sprintf("%s: %q %s: %s", ErrStructural, e.Headword, e.Section, e.Detail)
}

// Unwrap lets errors.Is match ErrStructural.
func (e *StructuralError) Unwrap() error {
	return ErrStructural
}

func structural(section, format string, args ...any) *StructuralError {
	return &StructuralError{Section: section, Detail: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether err must stop the conversion.
func IsFatal(err error) bool {
	return errors.Is(err, ErrStructural) || errors.Is(err, ErrMalformedRecord)
}
