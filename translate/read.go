package translate

import (
	"fmt"
	"math/big"

	"github.com/jsphweid/musicxml/duration"
	"github.com/jsphweid/musicxml/model"
	"github.com/jsphweid/musicxml/mxl"
)

type leafKind int

const (
	leafNone leafKind = iota
	leafNote
	leafChord
	leafRest
)

// pendingTuplet is a container still collecting members during the read
// pass. Explicit containers were opened by a start marker and must be
// closed by a stop marker; inferred ones were opened by a ratio change
// and close when the ratio changes back or the measure ends.
type pendingTuplet struct {
	ratio     duration.Ratio
	explicit  bool
	bracket   string
	placement string
	elems     []model.MeasureElement
}

type reader struct {
	opts      Options
	divisions int

	elems []model.MeasureElement
	stack []*pendingTuplet

	// Stop markers are not applied immediately: chord members of the
	// note that carried them still need the container open, so closing
	// waits for the next primary note (or the end of the stream).
	pendingStops   int
	pendingStopIdx int

	// Where the last leaf lives, so chord-marked notes can replace it.
	lastSlot *[]model.MeasureElement
	lastIdx  int
	lastKind leafKind
	lastDur  duration.Duration
}

// FromElements reassembles a measure's element tree from flat wire notes.
// Divisions is the divisions-per-quarter value in force; values below 1
// fall back to 1.
func FromElements(notes []mxl.Note, divisions int, opts Options) (*model.Measure, error) {
	if divisions < 1 {
		divisions = 1
	}
	r := reader{opts: opts, divisions: divisions}

	for i := range notes {
		if err := r.next(i, &notes[i]); err != nil {
			return nil, err
		}
	}
	if err := r.flushStops(); err != nil {
		return nil, err
	}
	r.closeInferred(duration.Ratio{})
	if len(r.stack) > 0 {
		return nil, &TupletMismatchError{ElementIndex: len(notes), Reason: "tuplet start without matching stop"}
	}

	elems := r.elems
	if opts.RecombineTies {
		var err error
		elems, err = recombineTies(elems)
		if err != nil {
			return nil, err
		}
	}
	return &model.Measure{Elements: elems}, nil
}

func (r *reader) next(i int, n *mxl.Note) error {
	if n.IsChord() {
		return r.chordMember(i, n)
	}
	if err := r.flushStops(); err != nil {
		return err
	}

	starts := n.TupletMarks("start")
	stops := n.TupletMarks("stop")
	if len(starts) > 1 {
		return &TupletMismatchError{ElementIndex: i, Reason: "one time modification cannot open two tuplets"}
	}

	ratio := timeModificationRatio(n)
	if !ratio.IsIdentity() && (ratio.Actual <= 0 || ratio.Normal <= 0) {
		return &TupletMismatchError{ElementIndex: i, Reason: "time modification terms must be positive"}
	}
	if len(starts) == 1 {
		if ratio.IsIdentity() {
			return &TupletMismatchError{ElementIndex: i, Reason: "tuplet start without time modification"}
		}
		r.closeInferred(ratio)
		r.push(ratio, true)
		r.top().bracket = starts[0].Bracket
		r.top().placement = starts[0].Placement
	} else {
		r.closeInferred(ratio)
		if !ratio.IsIdentity() && (len(r.stack) == 0 || ratio != r.top().ratio) {
			// No explicit start marker but the ratio changed: infer a
			// new container.
			r.push(ratio, false)
		}
	}
	if len(r.stack) > 0 && ratio != r.top().ratio {
		return &TupletMismatchError{
			ElementIndex: i,
			Reason:       fmt.Sprintf("time modification %s inside %s tuplet", ratio, r.top().ratio),
		}
	}

	el, dur, kind, err := r.decodeLeaf(i, n)
	if err != nil {
		return err
	}
	r.appendLeaf(el, dur, kind)

	r.pendingStops = len(stops)
	r.pendingStopIdx = i
	return nil
}

// decodeLeaf turns one primary wire note into a model leaf plus its
// decoded written symbol.
func (r *reader) decodeLeaf(i int, n *mxl.Note) (model.MeasureElement, duration.Duration, leafKind, error) {
	if n.Rest != nil && n.Type == "" {
		// A bar rest has no written type; its length comes straight from
		// the duration count.
		total := big.NewRat(int64(n.Duration), int64(4*r.divisions))
		return model.Rest{Duration: total, WholeMeasure: true}, duration.Duration{}, leafRest, nil
	}

	dur := duration.Duration{
		NoteType: n.Type,
		Dots:     len(n.Dots),
		Tuplet:   timeModificationRatio(n),
	}
	written, err := dur.WrittenLength()
	if err != nil {
		return nil, duration.Duration{}, leafNone, fmt.Errorf("element %d: %w", i, err)
	}
	trueLen := written.Mul(written, r.soundingScale())

	if n.Rest != nil {
		return model.Rest{Duration: trueLen}, dur, leafRest, nil
	}
	if n.Pitch == nil {
		return nil, duration.Duration{}, leafNone, fmt.Errorf("element %d: note has neither pitch nor rest", i)
	}
	note := model.Note{
		Pitch:    model.Pitch{Step: n.Pitch.Step, Alter: n.Pitch.Alter, Octave: n.Pitch.Octave},
		Duration: trueLen,
		Tie:      model.MakeTie(n.TieStarts(), n.TieStops()),
	}
	return note, dur, leafNote, nil
}

// chordMember merges a chord-marked note into the last leaf, promoting a
// plain note to a chord on first contact.
func (r *reader) chordMember(i int, n *mxl.Note) error {
	if r.lastKind == leafNone {
		return &ChordConsistencyError{ElementIndex: i, Reason: "chord marker with no preceding note"}
	}
	if r.lastKind == leafRest || n.Rest != nil {
		return &ChordConsistencyError{ElementIndex: i, Reason: "rests cannot join a chord"}
	}
	if n.Pitch == nil {
		return &ChordConsistencyError{ElementIndex: i, Reason: "chord note without pitch"}
	}
	dur := duration.Duration{
		NoteType: n.Type,
		Dots:     len(n.Dots),
		Tuplet:   timeModificationRatio(n),
	}
	if dur != r.lastDur {
		return &ChordConsistencyError{
			ElementIndex: i,
			Reason:       fmt.Sprintf("chord note %s disagrees with %s", dur, r.lastDur),
		}
	}

	pitch := model.Pitch{Step: n.Pitch.Step, Alter: n.Pitch.Alter, Octave: n.Pitch.Octave}
	switch prev := (*r.lastSlot)[r.lastIdx].(type) {
	case model.Note:
		(*r.lastSlot)[r.lastIdx] = model.Chord{
			Pitches:  []model.Pitch{prev.Pitch, pitch},
			Duration: prev.Duration,
			Tie:      prev.Tie,
		}
		r.lastKind = leafChord
	case model.Chord:
		prev.Pitches = append(prev.Pitches, pitch)
		(*r.lastSlot)[r.lastIdx] = prev
	}
	return nil
}

func (r *reader) appendLeaf(el model.MeasureElement, dur duration.Duration, kind leafKind) {
	slot := &r.elems
	if len(r.stack) > 0 {
		slot = &r.top().elems
	}
	*slot = append(*slot, el)

	r.lastSlot = slot
	r.lastIdx = len(*slot) - 1
	r.lastKind = kind
	r.lastDur = dur
}

// flushStops closes the containers whose stop markers arrived on the
// previous primary note.
func (r *reader) flushStops() error {
	for ; r.pendingStops > 0; r.pendingStops-- {
		if len(r.stack) == 0 {
			return &TupletMismatchError{ElementIndex: r.pendingStopIdx, Reason: "tuplet stop without matching start"}
		}
		r.closeTop()
	}
	return nil
}

// closeInferred closes inferred containers whose ratio the incoming note
// no longer matches.
func (r *reader) closeInferred(ratio duration.Ratio) {
	for len(r.stack) > 0 && !r.top().explicit && r.top().ratio != ratio {
		r.closeTop()
	}
}

func (r *reader) closeTop() {
	p := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]

	closed := model.Tuplet{
		Ratio:     p.ratio,
		Bracket:   p.bracket,
		Placement: p.placement,
		Elements:  p.elems,
	}
	if len(r.stack) > 0 {
		top := r.top()
		top.elems = append(top.elems, closed)
	} else {
		r.elems = append(r.elems, closed)
	}
}

func (r *reader) push(ratio duration.Ratio, explicit bool) {
	r.stack = append(r.stack, &pendingTuplet{ratio: ratio, explicit: explicit})
}

func (r *reader) top() *pendingTuplet {
	return r.stack[len(r.stack)-1]
}

// soundingScale is the written-to-sounding multiplier of the open
// containers.
func (r *reader) soundingScale() *big.Rat {
	scale := big.NewRat(1, 1)
	for _, p := range r.stack {
		scale.Mul(scale, big.NewRat(int64(p.ratio.Normal), int64(p.ratio.Actual)))
	}
	return scale
}

func timeModificationRatio(n *mxl.Note) duration.Ratio {
	if n.TimeModification == nil {
		return duration.Ratio{}
	}
	return duration.Ratio{
		Actual: n.TimeModification.ActualNotes,
		Normal: n.TimeModification.NormalNotes,
	}
}
