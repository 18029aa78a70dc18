// Package translate converts between the hierarchical measure model and
// the flat MusicXML note stream. Writing flattens chords and tuplets into
// per-note markers and splits unwriteable durations into tied groups;
// reading reassembles the containers from the markers.
package translate

import (
	"fmt"
	"math/big"

	"github.com/jsphweid/musicxml/constants"
	"github.com/jsphweid/musicxml/duration"
	"github.com/jsphweid/musicxml/model"
	"github.com/jsphweid/musicxml/mxl"
	"github.com/jsphweid/musicxml/util"
)

// Options tune both translation directions.
type Options struct {
	// AllowZeroRests lets zero-duration rests pass through as nothing on
	// write instead of failing.
	AllowZeroRests bool
	// RecombineTies merges tie-stop notes back into the note that opened
	// the tie on read. Off by default because a deliberately tied pair is
	// indistinguishable from a split one.
	RecombineTies bool
}

// plannedNote is a wire note whose integer duration count is not yet
// known: counts need the measure-wide divisions value, which is only
// fixed once every symbol has been planned.
type plannedNote struct {
	note    mxl.Note
	trueLen *big.Rat
}

type writer struct {
	opts    Options
	planned []*plannedNote
}

// ToElements flattens a measure into wire notes and the divisions value
// their duration counts are expressed in.
func ToElements(m *model.Measure) ([]mxl.Note, int, error) {
	return ToElementsOpts(m, Options{})
}

// ToElementsOpts is ToElements with explicit Options.
func ToElementsOpts(m *model.Measure, opts Options) ([]mxl.Note, int, error) {
	w := writer{opts: opts}
	if err := w.elements(m.Elements, nil); err != nil {
		return nil, 0, err
	}

	divisions := constants.DefaultDivisions
	for _, p := range w.planned {
		divisions = util.Lcm(divisions, duration.MinDivisionsFor(p.trueLen))
	}

	notes := make([]mxl.Note, len(w.planned))
	for i, p := range w.planned {
		count := new(big.Rat).Mul(p.trueLen, big.NewRat(int64(4*divisions), 1))
		p.note.Duration = int(count.Num().Int64())
		notes[i] = p.note
	}
	return notes, divisions, nil
}

func (w *writer) elements(elems []model.MeasureElement, stack []duration.Ratio) error {
	for i, el := range elems {
		if err := w.element(el, stack); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (w *writer) element(el model.MeasureElement, stack []duration.Ratio) error {
	switch e := el.(type) {
	case model.Note:
		return w.leaf(e.Duration, &e.Pitch, nil, e.Tie, stack)
	case model.Chord:
		if len(e.Pitches) == 0 {
			return &ChordConsistencyError{ElementIndex: len(w.planned), Reason: "chord with no pitches"}
		}
		return w.leaf(e.Duration, &e.Pitches[0], e.Pitches[1:], e.Tie, stack)
	case model.Rest:
		return w.rest(e, stack)
	case model.Tuplet:
		return w.tuplet(e, stack)
	}
	return fmt.Errorf("unknown measure element %T", el)
}

// leaf plans a note or chord: decompose its sounding duration into written
// symbols, then emit one wire note per symbol (plus chord members), tying
// adjacent symbols together and composing the logical tie onto the ends.
func (w *writer) leaf(total *big.Rat, primary *model.Pitch, extras []model.Pitch, tie model.Tie, stack []duration.Ratio) error {
	if total == nil {
		return &duration.ZeroDurationError{}
	}
	group, err := duration.Decompose(total, cumulativeRatio(stack))
	if err != nil {
		return err
	}
	scale := soundingScale(stack)
	immediate := immediateRatio(stack)

	for i, sym := range group {
		sym.Tuplet = immediate
		starts := i < len(group)-1 || tie.Starts()
		stops := i > 0 || tie.Stops()

		written, err := sym.WrittenLength()
		if err != nil {
			return err
		}
		trueLen := new(big.Rat).Mul(written, scale)

		w.plan(wireNote(sym, primary, starts, stops), trueLen)
		for j := range extras {
			n := wireNote(sym, &extras[j], starts, stops)
			n.Chord = &mxl.Empty{}
			w.plan(n, trueLen)
		}
	}
	return nil
}

func (w *writer) rest(r model.Rest, stack []duration.Ratio) error {
	if r.WholeMeasure {
		if r.Duration == nil || r.Duration.Sign() <= 0 {
			return &duration.ZeroDurationError{}
		}
		note := mxl.Note{Rest: &mxl.Rest{Measure: "yes"}, Voice: 1}
		w.plan(note, new(big.Rat).Set(r.Duration))
		return nil
	}

	total := r.Duration
	if total == nil {
		total = new(big.Rat)
	}
	group, err := duration.DecomposeOpts(total, cumulativeRatio(stack), duration.Options{
		AllowZero: w.opts.AllowZeroRests,
	})
	if err != nil {
		return err
	}
	scale := soundingScale(stack)
	immediate := immediateRatio(stack)

	// Rests never tie; a multi-symbol group is just consecutive rests.
	for _, sym := range group {
		sym.Tuplet = immediate
		written, err := sym.WrittenLength()
		if err != nil {
			return err
		}
		w.plan(wireNote(sym, nil, false, false), new(big.Rat).Mul(written, scale))
	}
	return nil
}

func (w *writer) tuplet(t model.Tuplet, stack []duration.Ratio) error {
	if t.Ratio.IsIdentity() {
		return &TupletMismatchError{ElementIndex: len(w.planned), Reason: "tuplet with identity ratio"}
	}
	if t.Ratio.Actual <= 0 || t.Ratio.Normal <= 0 {
		return &TupletMismatchError{ElementIndex: len(w.planned), Reason: "tuplet ratio terms must be positive"}
	}
	if len(t.Elements) == 0 {
		return &TupletMismatchError{ElementIndex: len(w.planned), Reason: "empty tuplet"}
	}

	first := len(w.planned)
	if err := w.elements(t.Elements, append(stack, t.Ratio)); err != nil {
		return err
	}
	if len(w.planned) == first {
		return &TupletMismatchError{ElementIndex: first, Reason: "tuplet produced no notes"}
	}

	// A nested tuplet may not lead its parent: the first note would have
	// to open two containers with a single time modification, a shape the
	// wire format cannot express.
	if len(w.planned[first].note.TupletMarks("start")) > 0 {
		return &TupletMismatchError{ElementIndex: first, Reason: "nested tuplet cannot lead its enclosing tuplet"}
	}

	// The bracket opens on the first emitted note and closes on the last
	// primary note (a chord closes on its lead note, not a member). Marks
	// are appended after the recursion so an inner tuplet sharing a note
	// lists its mark before the outer one. Bracket and placement pass
	// through uninterpreted.
	level := len(stack) + 1
	addTupletMark(&w.planned[first].note, mxl.TupletMark{
		Type:      "start",
		Number:    level,
		Bracket:   t.Bracket,
		Placement: t.Placement,
	})
	for i := len(w.planned) - 1; i >= first; i-- {
		if !w.planned[i].note.IsChord() {
			addTupletMark(&w.planned[i].note, mxl.TupletMark{Type: "stop", Number: level})
			break
		}
	}
	return nil
}

func (w *writer) plan(n mxl.Note, trueLen *big.Rat) {
	w.planned = append(w.planned, &plannedNote{note: n, trueLen: trueLen})
}

// wireNote builds the wire form of one written symbol: pitch or rest,
// type and dots, the symbol's own tuplet ratio and its tie markers.
func wireNote(sym duration.Duration, pitch *model.Pitch, tieStart, tieStop bool) mxl.Note {
	n := mxl.Note{Type: sym.NoteType, Voice: 1}
	if pitch != nil {
		n.Pitch = &mxl.Pitch{Step: pitch.Step, Alter: pitch.Alter, Octave: pitch.Octave}
	} else {
		n.Rest = &mxl.Rest{}
	}
	for i := 0; i < sym.Dots; i++ {
		n.Dots = append(n.Dots, mxl.Empty{})
	}
	if !sym.Tuplet.IsIdentity() {
		n.TimeModification = &mxl.TimeModification{
			ActualNotes: sym.Tuplet.Actual,
			NormalNotes: sym.Tuplet.Normal,
		}
	}
	// Ties appear both as sound-level tie elements and as notated tied
	// marks; stop precedes start on a pass-through note.
	if tieStop {
		n.Ties = append(n.Ties, mxl.Tie{Type: "stop"})
		addTied(&n, "stop")
	}
	if tieStart {
		n.Ties = append(n.Ties, mxl.Tie{Type: "start"})
		addTied(&n, "start")
	}
	return n
}

func addTied(n *mxl.Note, tieType string) {
	if n.Notations == nil {
		n.Notations = &mxl.Notations{}
	}
	n.Notations.Tied = append(n.Notations.Tied, mxl.Tied{Type: tieType})
}

func addTupletMark(n *mxl.Note, mark mxl.TupletMark) {
	if n.Notations == nil {
		n.Notations = &mxl.Notations{}
	}
	n.Notations.Tuplets = append(n.Notations.Tuplets, mark)
}

// cumulativeRatio folds a stack of nested ratios into the single ratio
// relating written length to sounding length.
func cumulativeRatio(stack []duration.Ratio) duration.Ratio {
	if len(stack) == 0 {
		return duration.Ratio{}
	}
	actual, normal := 1, 1
	for _, r := range stack {
		actual *= r.Actual
		normal *= r.Normal
	}
	g := util.Gcd(actual, normal)
	return duration.Ratio{Actual: actual / g, Normal: normal / g}
}

// soundingScale is the written-to-sounding multiplier for a ratio stack.
func soundingScale(stack []duration.Ratio) *big.Rat {
	scale := big.NewRat(1, 1)
	for _, r := range stack {
		scale.Mul(scale, big.NewRat(int64(r.Normal), int64(r.Actual)))
	}
	return scale
}

func immediateRatio(stack []duration.Ratio) duration.Ratio {
	if len(stack) == 0 {
		return duration.Ratio{}
	}
	return stack[len(stack)-1]
}
