// Package model holds the hierarchical score tree: scores own parts, parts
// own measures, and measures own notes, rests, chords and tuplet groups.
// It carries no translation logic; the translate package converts between
// this tree and the flat MusicXML element stream.
package model

import (
	"math/big"

	"github.com/jsphweid/musicxml/duration"
)

// Tie marks how a note or chord connects to its neighbors.
type Tie uint8

const (
	TieNone Tie = iota
	TieStart
	TieStop
	TieStartStop
)

func (t Tie) Starts() bool { return t == TieStart || t == TieStartStop }
func (t Tie) Stops() bool  { return t == TieStop || t == TieStartStop }

func MakeTie(starts, stops bool) Tie {
	switch {
	case starts && stops:
		return TieStartStop
	case starts:
		return TieStart
	case stops:
		return TieStop
	default:
		return TieNone
	}
}

// Pitch is an opaque spelled pitch: a step letter, a chromatic alteration
// in semitones and an octave.
type Pitch struct {
	Step   string
	Alter  float64
	Octave int
}

// MeasureElement is anything a measure (or tuplet) can contain directly.
type MeasureElement interface {
	measureElement()
}

// Note is one sounding pitch with an exact duration in whole notes.
type Note struct {
	Pitch    Pitch
	Duration *big.Rat
	Tie      Tie
}

// Rest is silence with an exact duration in whole notes. WholeMeasure
// marks a bar rest, written without a note type on the wire.
type Rest struct {
	Duration     *big.Rat
	WholeMeasure bool
}

// Chord is several simultaneous pitches sharing one duration and one tie
// state. Pitches keep their construction order.
type Chord struct {
	Pitches  []Pitch
	Duration *big.Rat
	Tie      Tie
}

// Tuplet groups elements under a time modification of Ratio.Actual notes
// in the written time of Ratio.Normal. Tuplets nest. Bracket and
// Placement are carried through from the wire untouched; empty means
// unspecified.
type Tuplet struct {
	Ratio     duration.Ratio
	Bracket   string
	Placement string
	Elements  []MeasureElement
}

func (Note) measureElement()   {}
func (Rest) measureElement()   {}
func (Chord) measureElement()  {}
func (Tuplet) measureElement() {}

// Measure is an ordered sequence of elements, optionally opening with a
// time signature.
type Measure struct {
	Number   int
	Time     *TimeSignature
	Elements []MeasureElement
}

type TimeSignature struct {
	Beats    int
	BeatType int
}

// Part is an ordered sequence of measures with a display name.
type Part struct {
	ID       string
	Name     string
	Measures []*Measure
}

// Score is the document root: parts plus identification metadata.
type Score struct {
	Title    string
	Composer string
	Parts    []*Part
}
