package midi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/musicxml/constants"
	"github.com/jsphweid/musicxml/duration"
	"github.com/jsphweid/musicxml/model"
)

// noteSpan is one sounding note recovered from a rendered event list.
type noteSpan struct {
	key uint8
	on  uint32
	off uint32
}

func spansOf(events []event) []noteSpan {
	var spans []noteSpan
	onTicks := make(map[uint8]uint32)
	for _, ev := range events {
		var ch, key, vel uint8
		if ev.message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			onTicks[key] = ev.tick
		} else if ev.message.GetNoteOff(&ch, &key, &vel) {
			spans = append(spans, noteSpan{key: key, on: onTicks[key], off: ev.tick})
		}
	}
	return spans
}

func TestExportsOneTrackPerPartPlusTempo(t *testing.T) {
	score := &model.Score{
		Title: "Duo",
		Parts: []*model.Part{
			{ID: "P1", Measures: []*model.Measure{{Elements: []model.MeasureElement{
				model.Note{Pitch: model.Pitch{Step: "C", Octave: 4}, Duration: big.NewRat(1, 4)},
			}}}},
			{ID: "P2", Measures: []*model.Measure{{Elements: []model.MeasureElement{
				model.Note{Pitch: model.Pitch{Step: "G", Octave: 3}, Duration: big.NewRat(1, 4)},
			}}}},
		},
	}
	out, err := ExportSMF(score)

	assert.NoError(t, err)
	assert.Len(t, out.Tracks, 3)
}

func TestNoteTimingInTicks(t *testing.T) {
	part := &model.Part{Measures: []*model.Measure{{Elements: []model.MeasureElement{
		model.Note{Pitch: model.Pitch{Step: "C", Octave: 4}, Duration: big.NewRat(1, 4)},
		model.Rest{Duration: big.NewRat(1, 4)},
		model.Note{Pitch: model.Pitch{Step: "E", Octave: 4}, Duration: big.NewRat(1, 8)},
	}}}}
	events, err := partEvents(part, 0)
	assert.NoError(t, err)

	spans := spansOf(events)
	assert.Len(t, spans, 2)

	q := uint32(constants.TicksPerQuarter)
	assert.Equal(t, noteSpan{key: 60, on: 0, off: q}, spans[0])
	assert.Equal(t, noteSpan{key: 64, on: 2 * q, off: 2*q + q/2}, spans[1])
}

func TestTupletTimingIsExact(t *testing.T) {
	third := big.NewRat(1, 12)
	part := &model.Part{Measures: []*model.Measure{{Elements: []model.MeasureElement{
		model.Tuplet{
			Ratio: duration.Ratio{Actual: 3, Normal: 2},
			Elements: []model.MeasureElement{
				model.Note{Pitch: model.Pitch{Step: "C", Octave: 4}, Duration: third},
				model.Note{Pitch: model.Pitch{Step: "D", Octave: 4}, Duration: third},
				model.Note{Pitch: model.Pitch{Step: "E", Octave: 4}, Duration: third},
			},
		},
	}}}}
	events, err := partEvents(part, 0)
	assert.NoError(t, err)

	spans := spansOf(events)
	assert.Len(t, spans, 3)
	assert.Equal(t, uint32(320), spans[0].off)
	assert.Equal(t, uint32(320), spans[1].on)
	assert.Equal(t, uint32(640), spans[2].on)
	assert.Equal(t, uint32(960), spans[2].off)
}

func TestTiedNotesSoundOnce(t *testing.T) {
	part := &model.Part{Measures: []*model.Measure{
		{Elements: []model.MeasureElement{
			model.Note{Pitch: model.Pitch{Step: "C", Octave: 4}, Duration: big.NewRat(1, 2), Tie: model.TieStart},
		}},
		{Elements: []model.MeasureElement{
			model.Note{Pitch: model.Pitch{Step: "C", Octave: 4}, Duration: big.NewRat(1, 4), Tie: model.TieStop},
		}},
	}}
	events, err := partEvents(part, 0)
	assert.NoError(t, err)

	spans := spansOf(events)
	assert.Len(t, spans, 1)
	assert.Equal(t, uint32(0), spans[0].on)
	assert.Equal(t, uint32(3*constants.TicksPerQuarter), spans[0].off)
}

func TestChordStrikesAllPitchesTogether(t *testing.T) {
	part := &model.Part{Measures: []*model.Measure{{Elements: []model.MeasureElement{
		model.Chord{
			Pitches: []model.Pitch{
				{Step: "C", Octave: 4},
				{Step: "E", Octave: 4},
				{Step: "G", Octave: 4},
			},
			Duration: big.NewRat(1, 4),
		},
	}}}}
	events, err := partEvents(part, 0)
	assert.NoError(t, err)

	spans := spansOf(events)
	assert.Len(t, spans, 3)
	for _, s := range spans {
		assert.Equal(t, uint32(0), s.on)
		assert.Equal(t, uint32(constants.TicksPerQuarter), s.off)
	}
}

func TestMidiKeySpelling(t *testing.T) {
	assert := assert.New(t)

	key, err := midiKey(model.Pitch{Step: "C", Octave: 4})
	assert.NoError(err)
	assert.Equal(uint8(60), key)

	key, err = midiKey(model.Pitch{Step: "B", Alter: -1, Octave: 3})
	assert.NoError(err)
	assert.Equal(uint8(58), key)

	key, err = midiKey(model.Pitch{Step: "A", Octave: 0})
	assert.NoError(err)
	assert.Equal(uint8(21), key)

	_, err = midiKey(model.Pitch{Step: "H", Octave: 4})
	assert.Error(err)
}
