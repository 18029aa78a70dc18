// Package mxl declares the MusicXML score-partwise wire schema as
// encoding/xml structs, covering the note/rest/chord/tuplet/tie subset
// plus the document skeleton around it.
package mxl

import "encoding/xml"

type ScorePartwise struct {
	XMLName        xml.Name        `xml:"score-partwise"`
	Version        string          `xml:"version,attr,omitempty"`
	Work           *Work           `xml:"work,omitempty"`
	Identification *Identification `xml:"identification,omitempty"`
	PartList       PartList        `xml:"part-list"`
	Parts          []Part          `xml:"part"`
}

type Work struct {
	Title string `xml:"work-title,omitempty"`
}

type Identification struct {
	Creators []Creator `xml:"creator,omitempty"`
}

type Creator struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type PartList struct {
	ScoreParts []ScorePart `xml:"score-part"`
}

type ScorePart struct {
	ID       string `xml:"id,attr"`
	PartName string `xml:"part-name"`
}

type Part struct {
	ID       string    `xml:"id,attr"`
	Measures []Measure `xml:"measure"`
}

type Measure struct {
	Number     int         `xml:"number,attr"`
	Attributes *Attributes `xml:"attributes,omitempty"`
	Notes      []Note      `xml:"note"`
}

type Attributes struct {
	Divisions int            `xml:"divisions,omitempty"`
	Time      *TimeSignature `xml:"time,omitempty"`
}

type TimeSignature struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

// Note is one flat wire note. Chord, tie and tuplet semantics live in
// per-note markers; the translate package turns runs of these back into
// containers.
type Note struct {
	Chord            *Empty            `xml:"chord,omitempty"`
	Pitch            *Pitch            `xml:"pitch,omitempty"`
	Rest             *Rest             `xml:"rest,omitempty"`
	Duration         int               `xml:"duration,omitempty"`
	Ties             []Tie             `xml:"tie,omitempty"`
	Voice            int               `xml:"voice,omitempty"`
	Type             string            `xml:"type,omitempty"`
	Dots             []Empty           `xml:"dot,omitempty"`
	TimeModification *TimeModification `xml:"time-modification,omitempty"`
	Notations        *Notations        `xml:"notations,omitempty"`
}

// Empty is a marker element with no content, e.g. <chord/> or <dot/>.
type Empty struct{}

type Pitch struct {
	Step   string  `xml:"step"`
	Alter  float64 `xml:"alter,omitempty"`
	Octave int     `xml:"octave"`
}

type Rest struct {
	Measure string `xml:"measure,attr,omitempty"`
}

type Tie struct {
	Type string `xml:"type,attr"`
}

type TimeModification struct {
	ActualNotes int `xml:"actual-notes"`
	NormalNotes int `xml:"normal-notes"`
}

type Notations struct {
	Tied    []Tied       `xml:"tied,omitempty"`
	Tuplets []TupletMark `xml:"tuplet,omitempty"`
}

type Tied struct {
	Type string `xml:"type,attr"`
}

// TupletMark brackets a tuplet run. Number distinguishes nesting levels;
// bracket and placement are carried through untouched.
type TupletMark struct {
	Type      string `xml:"type,attr"`
	Number    int    `xml:"number,attr,omitempty"`
	Bracket   string `xml:"bracket,attr,omitempty"`
	Placement string `xml:"placement,attr,omitempty"`
}

// IsChord reports whether the note carries the simultaneous-with-previous
// marker.
func (n *Note) IsChord() bool {
	return n.Chord != nil
}

// TupletMarks returns the tuplet markers of the given type, in order.
func (n *Note) TupletMarks(markType string) []TupletMark {
	if n.Notations == nil {
		return nil
	}
	var res []TupletMark
	for _, m := range n.Notations.Tuplets {
		if m.Type == markType {
			res = append(res, m)
		}
	}
	return res
}

// TieStarts and TieStops inspect the sound-level tie elements.
func (n *Note) TieStarts() bool { return n.hasTie("start") }
func (n *Note) TieStops() bool  { return n.hasTie("stop") }

func (n *Note) hasTie(tieType string) bool {
	for _, t := range n.Ties {
		if t.Type == tieType {
			return true
		}
	}
	return false
}
