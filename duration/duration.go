// Package duration models exact musical durations as fractions of a whole
// note and maps them onto the written vocabulary of MusicXML: a note type
// name, a number of duration dots and an optional tuplet ratio.
package duration

import (
	"fmt"
	"math/big"
)

// Ratio is a tuplet time modification: Actual notes played in the written
// time of Normal notes. The zero value means "not in a tuplet".
type Ratio struct {
	Actual int
	Normal int
}

func (r Ratio) IsIdentity() bool {
	return r.Actual == 0 || r.Actual == r.Normal
}

func (r Ratio) String() string {
	if r.IsIdentity() {
		return "1:1"
	}
	return fmt.Sprintf("%d:%d", r.Actual, r.Normal)
}

// noteTypeInfo pairs a MusicXML type name with its undotted length in
// whole notes. Ordered longest first so greedy decomposition can scan it.
type noteTypeInfo struct {
	name   string
	length *big.Rat
}

var noteTypes = []noteTypeInfo{
	{"breve", big.NewRat(2, 1)},
	{"whole", big.NewRat(1, 1)},
	{"half", big.NewRat(1, 2)},
	{"quarter", big.NewRat(1, 4)},
	{"eighth", big.NewRat(1, 8)},
	{"16th", big.NewRat(1, 16)},
	{"32nd", big.NewRat(1, 32)},
	{"64th", big.NewRat(1, 64)},
	{"128th", big.NewRat(1, 128)},
	{"256th", big.NewRat(1, 256)},
	{"512th", big.NewRat(1, 512)},
	{"1024th", big.NewRat(1, 1024)},
}

var nameToLength = func() map[string]*big.Rat {
	m := make(map[string]*big.Rat, len(noteTypes))
	for _, nt := range noteTypes {
		m[nt.name] = nt.length
	}
	return m
}()

// TypeLength returns the undotted length of a note type name in whole
// notes, or an UnknownSymbolError if the name is not part of the
// vocabulary.
func TypeLength(noteType string) (*big.Rat, error) {
	length, ok := nameToLength[noteType]
	if !ok {
		return nil, &UnknownSymbolError{NoteType: noteType}
	}
	return new(big.Rat).Set(length), nil
}

// Duration is a single written symbol: one note type, its dots and the
// tuplet ratio it sounds under. It is the unit the wire format can carry
// on one note element.
type Duration struct {
	NoteType string
	Dots     int
	Tuplet   Ratio
}

// dotMultiplier returns (2^(dots+1) - 1) / 2^dots, the factor dots add to
// an undotted length.
func dotMultiplier(dots int) *big.Rat {
	return big.NewRat((1<<(dots+1))-1, 1<<dots)
}

// WrittenLength is the length of the symbol as written, in whole notes,
// ignoring any tuplet scaling.
func (d Duration) WrittenLength() (*big.Rat, error) {
	base, err := TypeLength(d.NoteType)
	if err != nil {
		return nil, err
	}
	return base.Mul(base, dotMultiplier(d.Dots)), nil
}

// TrueLength is the sounding length in whole notes: the written length
// scaled by normal/actual when the symbol sits inside a tuplet.
func (d Duration) TrueLength() (*big.Rat, error) {
	written, err := d.WrittenLength()
	if err != nil {
		return nil, err
	}
	if d.Tuplet.IsIdentity() {
		return written, nil
	}
	return written.Mul(written, big.NewRat(int64(d.Tuplet.Normal), int64(d.Tuplet.Actual))), nil
}

// MinDivisionsFor is the smallest divisions-per-quarter-note value that
// can express an exact length (in whole notes) as an integer duration
// count.
func MinDivisionsFor(length *big.Rat) int {
	quarters := new(big.Rat).Mul(length, big.NewRat(4, 1))
	return int(quarters.Denom().Int64())
}

// MinDivisions is the smallest divisions-per-quarter-note value that can
// express this symbol's true length as an integer duration count.
func (d Duration) MinDivisions() (int, error) {
	trueLen, err := d.TrueLength()
	if err != nil {
		return 0, err
	}
	return MinDivisionsFor(trueLen), nil
}

func (d Duration) String() string {
	s := d.NoteType
	for i := 0; i < d.Dots; i++ {
		s += "."
	}
	if !d.Tuplet.IsIdentity() {
		s += " (" + d.Tuplet.String() + ")"
	}
	return s
}

// TypeAndDots finds the single note type and dot count whose written
// length equals the given fraction of a whole note exactly, or fails with
// an UnrepresentableDurationError when no symbol with at most maxDots
// dots matches.
func TypeAndDots(written *big.Rat, maxDots int) (string, int, error) {
	for dots := 0; dots <= maxDots; dots++ {
		undotted := new(big.Rat).Quo(written, dotMultiplier(dots))
		for _, nt := range noteTypes {
			if undotted.Cmp(nt.length) == 0 {
				return nt.name, dots, nil
			}
		}
	}
	return "", 0, &UnrepresentableDurationError{Remainder: new(big.Rat).Set(written)}
}
