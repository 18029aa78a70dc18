package translate

import "fmt"

// The errors below are structural: they describe a malformed container
// encoding and abort the translation of the whole measure. ElementIndex
// is the zero-based position of the offending wire note; a fault only
// detectable at the end of the measure carries the note count.

// TupletMismatchError reports unbalanced or ambiguous tuplet start/stop
// markers, or a member whose ratio disagrees with its container.
type TupletMismatchError struct {
	ElementIndex int
	Reason       string
}

func (e *TupletMismatchError) Error() string {
	return fmt.Sprintf("tuplet mismatch at element %d: %s", e.ElementIndex, e.Reason)
}

// ChordConsistencyError reports a chord-marked note that disagrees with
// the chord being assembled, or one with nothing to attach to.
type ChordConsistencyError struct {
	ElementIndex int
	Reason       string
}

func (e *ChordConsistencyError) Error() string {
	return fmt.Sprintf("chord inconsistency at element %d: %s", e.ElementIndex, e.Reason)
}

// TieConsistencyError reports a tie stop with no matching open tie at the
// same pitch. It only arises when tie recombination is requested.
type TieConsistencyError struct {
	Reason string
}

func (e *TieConsistencyError) Error() string {
	return "tie inconsistency: " + e.Reason
}
