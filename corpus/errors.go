package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingIdentifier is returned when identifiers are expected but a
	// line is blank.
	ErrMissingIdentifier = errors.New("line has no utterance identifier")
	// ErrLengthMismatch is returned in strict mode when one transcript has
	// lines left over after the other ends.
	ErrLengthMismatch = errors.New("reference and hypothesis have different numbers of lines")
	// ErrPairTooLarge is returned when a pair exceeds Options.MaxCells.
	ErrPairTooLarge = errors.New("pair is too large to align")
)

// IdentifierMismatchError reports a pair whose reference and hypothesis
// identifiers differ.
type IdentifierMismatchError struct {
	Line int
	Ref  string
	Hyp  string
}

func (e *IdentifierMismatchError) Error() string {
	return fmt.Sprintf("line %d: reference id %q does not match hypothesis id %q", e.Line, e.Ref, e.Hyp)
}
