package translate

import (
	"fmt"
	"math/big"

	"github.com/jsphweid/musicxml/model"
)

// recombineTies merges runs of tied notes (or chords) at the same pitch
// back into single elements, recursing into tuplets. A run is a tie-start
// element followed by tie-stop elements of the same pitch; the merged
// element sounds for the sum and keeps the outer tie ends. A stop with no
// open tie is an error unless it leads its container, where it reads as a
// tie arriving from across the boundary.
func recombineTies(elems []model.MeasureElement) ([]model.MeasureElement, error) {
	out := make([]model.MeasureElement, 0, len(elems))

	for i := 0; i < len(elems); i++ {
		switch el := elems[i].(type) {
		case model.Tuplet:
			inner, err := recombineTies(el.Elements)
			if err != nil {
				return nil, err
			}
			el.Elements = inner
			out = append(out, el)

		case model.Note:
			if el.Tie.Stops() && !crossesBoundary(elems, i) {
				return nil, &TieConsistencyError{
					Reason: fmt.Sprintf("tie stop on %s%d with no open tie", el.Pitch.Step, el.Pitch.Octave),
				}
			}
			merged, consumed := mergeNoteRun(el, elems[i+1:])
			out = append(out, merged)
			i += consumed

		case model.Chord:
			if el.Tie.Stops() && !crossesBoundary(elems, i) {
				return nil, &TieConsistencyError{Reason: "tie stop on chord with no open tie"}
			}
			merged, consumed := mergeChordRun(el, elems[i+1:])
			out = append(out, merged)
			i += consumed

		default:
			out = append(out, el)
		}
	}
	return out, nil
}

func mergeNoteRun(first model.Note, rest []model.MeasureElement) (model.Note, int) {
	total := new(big.Rat).Set(first.Duration)
	last := first
	consumed := 0

	for last.Tie.Starts() && consumed < len(rest) {
		next, ok := rest[consumed].(model.Note)
		if !ok || !next.Tie.Stops() || !next.Pitch.Equal(first.Pitch) {
			break
		}
		total.Add(total, next.Duration)
		last = next
		consumed++
	}
	if consumed == 0 {
		return first, 0
	}
	return model.Note{
		Pitch:    first.Pitch,
		Duration: total,
		Tie:      model.MakeTie(last.Tie.Starts(), first.Tie.Stops()),
	}, consumed
}

func mergeChordRun(first model.Chord, rest []model.MeasureElement) (model.Chord, int) {
	total := new(big.Rat).Set(first.Duration)
	last := first
	consumed := 0

	for last.Tie.Starts() && consumed < len(rest) {
		next, ok := rest[consumed].(model.Chord)
		if !ok || !next.Tie.Stops() || !samePitches(first.Pitches, next.Pitches) {
			break
		}
		total.Add(total, next.Duration)
		last = next
		consumed++
	}
	if consumed == 0 {
		return first, 0
	}
	return model.Chord{
		Pitches:  first.Pitches,
		Duration: total,
		Tie:      model.MakeTie(last.Tie.Starts(), first.Tie.Stops()),
	}, consumed
}

// crossesBoundary reports whether a tie stop at position i can have its
// start on the other side of a container edge: at the head of its
// container, or right after a tuplet whose last note may have opened it.
func crossesBoundary(elems []model.MeasureElement, i int) bool {
	if i == 0 {
		return true
	}
	_, isTuplet := elems[i-1].(model.Tuplet)
	return isTuplet
}

func samePitches(a, b []model.Pitch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
