package duration

import (
	"fmt"
	"math/big"
)

// ZeroDurationError is returned when a sounding event (note or chord) has
// duration zero. Rests may opt in to zero durations via Options.
type ZeroDurationError struct{}

func (e *ZeroDurationError) Error() string {
	return "duration: zero duration is not valid for a sounding event"
}

// UnrepresentableDurationError is returned when a duration cannot be
// written as notes at the configured resolution, e.g. a remainder smaller
// than the smallest allowed subdivision.
type UnrepresentableDurationError struct {
	Remainder  *big.Rat
	Resolution string
}

func (e *UnrepresentableDurationError) Error() string {
	if e.Resolution != "" {
		return fmt.Sprintf("duration: remainder %s not representable at %s resolution",
			e.Remainder.RatString(), e.Resolution)
	}
	return fmt.Sprintf("duration: %s not representable as a written note value", e.Remainder.RatString())
}

// UnknownSymbolError is returned when a wire note type name is not part
// of the known vocabulary.
type UnknownSymbolError struct {
	NoteType string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("duration: unknown note type %q", e.NoteType)
}
