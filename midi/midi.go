// Package midi renders a score as a standard MIDI file: one tempo track
// plus one track per part. Exact rational durations become tick offsets at
// a fixed resolution, so tuplet timing survives the conversion.
package midi

import (
	"fmt"
	"io"
	"math/big"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/musicxml/constants"
	"github.com/jsphweid/musicxml/model"
)

const velocity = 80

// event is a MIDI message at an absolute tick offset; tracks are built
// from sorted events and converted to deltas at the end.
type event struct {
	tick    uint32
	message smf.Message
}

// ExportSMF renders the score as a format 1 MIDI file.
func ExportSMF(score *model.Score) (*smf.SMF, error) {
	out := smf.NewSMF1()
	out.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)
	out.Add(tempoTrack(score))

	for i, part := range score.Parts {
		channel := uint8(i % 16)
		track, err := partTrack(part, channel)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", part.ID, err)
		}
		out.Add(track)
	}
	return out, nil
}

// WriteSMF renders the score and writes the file to w.
func WriteSMF(score *model.Score, w io.Writer) error {
	out, err := ExportSMF(score)
	if err != nil {
		return err
	}
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}

func tempoTrack(score *model.Score) smf.Track {
	track := smf.Track{}
	if score.Title != "" {
		track = append(track, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTrackSequenceName(score.Title))})
	}
	track = append(track, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTempo(constants.DefaultTempo))})

	if ts := firstTimeSignature(score); ts != nil {
		track = append(track, smf.Event{
			Delta:   0,
			Message: smf.Message(smf.MetaTimeSig(uint8(ts.Beats), uint8(ts.BeatType), 24, 8)),
		})
	}
	track = append(track, smf.Event{Delta: 0, Message: smf.EOT})
	return track
}

func firstTimeSignature(score *model.Score) *model.TimeSignature {
	for _, part := range score.Parts {
		for _, m := range part.Measures {
			if m.Time != nil {
				return m.Time
			}
		}
	}
	return nil
}

func partTrack(part *model.Part, channel uint8) (smf.Track, error) {
	track := smf.Track{}
	if part.Name != "" {
		track = append(track, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTrackSequenceName(part.Name))})
	}
	track = append(track, smf.Event{Delta: 0, Message: smf.Message(midi.ProgramChange(channel, 0))})

	events, err := partEvents(part, channel)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick == events[j].tick {
			// Note-offs sort before note-ons so a repeated pitch
			// releases before it restrikes.
			var ch, key, vel uint8
			return events[i].message.GetNoteOff(&ch, &key, &vel)
		}
		return events[i].tick < events[j].tick
	})

	var lastTick uint32
	for _, ev := range events {
		track = append(track, smf.Event{Delta: ev.tick - lastTick, Message: ev.message})
		lastTick = ev.tick
	}
	track = append(track, smf.Event{Delta: 0, Message: smf.EOT})
	return track, nil
}

func partEvents(part *model.Part, channel uint8) ([]event, error) {
	var events []event

	// Tied notes merge into one sounding event: the tie start opens the
	// note and the final stop closes it. Keys currently held are open.
	open := make(map[uint8]bool)

	cursor := new(big.Rat)
	emit := func(pitches []model.Pitch, dur *big.Rat, tie model.Tie) error {
		onTick := ticksAt(cursor)
		offTick := ticksAt(new(big.Rat).Add(cursor, dur))

		for _, p := range pitches {
			key, err := midiKey(p)
			if err != nil {
				return err
			}
			continuing := open[key]
			if !continuing {
				// Not mid-tie: this note strikes.
				events = append(events, event{tick: onTick, message: smf.Message(midi.NoteOn(channel, key, velocity))})
			}
			if tie.Starts() {
				open[key] = true
			} else {
				delete(open, key)
				events = append(events, event{tick: offTick, message: smf.Message(midi.NoteOff(channel, key))})
			}
		}
		return nil
	}

	var walk func(elems []model.MeasureElement) error
	walk = func(elems []model.MeasureElement) error {
		for _, el := range elems {
			switch e := el.(type) {
			case model.Note:
				if err := emit([]model.Pitch{e.Pitch}, e.Duration, e.Tie); err != nil {
					return err
				}
				cursor.Add(cursor, e.Duration)
			case model.Chord:
				if err := emit(e.Pitches, e.Duration, e.Tie); err != nil {
					return err
				}
				cursor.Add(cursor, e.Duration)
			case model.Rest:
				cursor.Add(cursor, e.Duration)
			case model.Tuplet:
				if err := walk(e.Elements); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, m := range part.Measures {
		if err := walk(m.Elements); err != nil {
			return nil, err
		}
	}

	// Close anything still sounding at the end of the part.
	endTick := ticksAt(cursor)
	for key := range open {
		events = append(events, event{tick: endTick, message: smf.Message(midi.NoteOff(channel, key))})
	}
	return events, nil
}

// ticksAt converts a whole-note offset to ticks, rounding to nearest.
func ticksAt(offset *big.Rat) uint32 {
	ticks := new(big.Rat).Mul(offset, big.NewRat(4*constants.TicksPerQuarter, 1))
	num := new(big.Int).Mul(ticks.Num(), big.NewInt(2))
	num.Add(num, ticks.Denom())
	den := new(big.Int).Mul(ticks.Denom(), big.NewInt(2))
	return uint32(new(big.Int).Quo(num, den).Int64())
}

var stepSemitones = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

// midiKey maps a spelled pitch to its MIDI key number, middle C at 60.
func midiKey(p model.Pitch) (uint8, error) {
	semis, ok := stepSemitones[p.Step]
	if !ok {
		return 0, fmt.Errorf("unknown pitch step %q", p.Step)
	}
	key := (p.Octave+1)*12 + semis + int(p.Alter)
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("pitch %s%d out of MIDI range", p.Step, p.Octave)
	}
	return uint8(key), nil
}
