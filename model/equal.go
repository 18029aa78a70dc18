package model

import "math/big"

// Structural equality helpers. big.Rat values are compared by value, not
// by representation, so these are what tests and the validate command use
// instead of reflect.DeepEqual.

func ratEqual(a, b *big.Rat) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

func (p Pitch) Equal(other Pitch) bool {
	return p.Step == other.Step && p.Alter == other.Alter && p.Octave == other.Octave
}

func ElementsEqual(a, b []MeasureElement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !elementEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func elementEqual(a, b MeasureElement) bool {
	switch x := a.(type) {
	case Note:
		y, ok := b.(Note)
		return ok && x.Pitch.Equal(y.Pitch) && ratEqual(x.Duration, y.Duration) && x.Tie == y.Tie
	case Rest:
		y, ok := b.(Rest)
		return ok && ratEqual(x.Duration, y.Duration) && x.WholeMeasure == y.WholeMeasure
	case Chord:
		y, ok := b.(Chord)
		if !ok || len(x.Pitches) != len(y.Pitches) || !ratEqual(x.Duration, y.Duration) || x.Tie != y.Tie {
			return false
		}
		for i := range x.Pitches {
			if !x.Pitches[i].Equal(y.Pitches[i]) {
				return false
			}
		}
		return true
	case Tuplet:
		y, ok := b.(Tuplet)
		return ok && x.Ratio == y.Ratio && x.Bracket == y.Bracket &&
			x.Placement == y.Placement && ElementsEqual(x.Elements, y.Elements)
	}
	return false
}

func (m *Measure) Equal(other *Measure) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Number != other.Number {
		return false
	}
	if (m.Time == nil) != (other.Time == nil) {
		return false
	}
	if m.Time != nil && *m.Time != *other.Time {
		return false
	}
	return ElementsEqual(m.Elements, other.Elements)
}

func (p *Part) Equal(other *Part) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.ID != other.ID || p.Name != other.Name || len(p.Measures) != len(other.Measures) {
		return false
	}
	for i := range p.Measures {
		if !p.Measures[i].Equal(other.Measures[i]) {
			return false
		}
	}
	return true
}

func (s *Score) Equal(other *Score) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Title != other.Title || s.Composer != other.Composer || len(s.Parts) != len(other.Parts) {
		return false
	}
	for i := range s.Parts {
		if !s.Parts[i].Equal(other.Parts[i]) {
			return false
		}
	}
	return true
}
