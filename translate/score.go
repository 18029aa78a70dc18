package translate

import (
	"fmt"

	"github.com/jsphweid/musicxml/model"
	"github.com/jsphweid/musicxml/mxl"
)

// ExportMeasure flattens one measure, stamping its own divisions value in
// the attributes so each measure stays self-describing.
func ExportMeasure(m *model.Measure, opts Options) (*mxl.Measure, error) {
	notes, divisions, err := ToElementsOpts(m, opts)
	if err != nil {
		return nil, err
	}
	attrs := &mxl.Attributes{Divisions: divisions}
	if m.Time != nil {
		attrs.Time = &mxl.TimeSignature{Beats: m.Time.Beats, BeatType: m.Time.BeatType}
	}
	return &mxl.Measure{Number: m.Number, Attributes: attrs, Notes: notes}, nil
}

// ImportMeasure reassembles one measure. Divisions is the value carried
// over from earlier measures; the returned value is what later measures
// should inherit.
func ImportMeasure(wm *mxl.Measure, divisions int, opts Options) (*model.Measure, int, error) {
	if wm.Attributes != nil && wm.Attributes.Divisions > 0 {
		divisions = wm.Attributes.Divisions
	}
	m, err := FromElements(wm.Notes, divisions, opts)
	if err != nil {
		return nil, divisions, err
	}
	m.Number = wm.Number
	if wm.Attributes != nil && wm.Attributes.Time != nil {
		m.Time = &model.TimeSignature{
			Beats:    wm.Attributes.Time.Beats,
			BeatType: wm.Attributes.Time.BeatType,
		}
	}
	return m, divisions, nil
}

// ExportScore flattens a whole score into a score-partwise document.
func ExportScore(s *model.Score, opts Options) (*mxl.ScorePartwise, error) {
	doc := &mxl.ScorePartwise{Version: "4.0"}
	if s.Title != "" {
		doc.Work = &mxl.Work{Title: s.Title}
	}
	if s.Composer != "" {
		doc.Identification = &mxl.Identification{
			Creators: []mxl.Creator{{Type: "composer", Value: s.Composer}},
		}
	}

	for i, part := range s.Parts {
		id := part.ID
		if id == "" {
			id = fmt.Sprintf("P%d", i+1)
		}
		doc.PartList.ScoreParts = append(doc.PartList.ScoreParts, mxl.ScorePart{
			ID:       id,
			PartName: part.Name,
		})

		wirePart := mxl.Part{ID: id}
		for j, m := range part.Measures {
			wm, err := ExportMeasure(m, opts)
			if err != nil {
				return nil, fmt.Errorf("part %s, measure %d: %w", id, m.Number, err)
			}
			if wm.Number == 0 {
				wm.Number = j + 1
			}
			wirePart.Measures = append(wirePart.Measures, *wm)
		}
		doc.Parts = append(doc.Parts, wirePart)
	}
	return doc, nil
}

// ImportScore reassembles a model score from a score-partwise document.
// Divisions values thread forward within each part.
func ImportScore(doc *mxl.ScorePartwise, opts Options) (*model.Score, error) {
	names := make(map[string]string, len(doc.PartList.ScoreParts))
	for _, sp := range doc.PartList.ScoreParts {
		names[sp.ID] = sp.PartName
	}

	score := &model.Score{Title: titleOf(doc), Composer: composerOf(doc)}
	for _, wp := range doc.Parts {
		part := &model.Part{ID: wp.ID, Name: names[wp.ID]}
		divisions := 0
		for i := range wp.Measures {
			wm := &wp.Measures[i]
			m, div, err := ImportMeasure(wm, divisions, opts)
			if err != nil {
				return nil, fmt.Errorf("part %s, measure %d: %w", wp.ID, wm.Number, err)
			}
			divisions = div
			part.Measures = append(part.Measures, m)
		}
		score.Parts = append(score.Parts, part)
	}
	return score, nil
}

func titleOf(doc *mxl.ScorePartwise) string {
	if doc.Work == nil {
		return ""
	}
	return doc.Work.Title
}

func composerOf(doc *mxl.ScorePartwise) string {
	if doc.Identification == nil {
		return ""
	}
	for _, c := range doc.Identification.Creators {
		if c.Type == "composer" {
			return c.Value
		}
	}
	return ""
}
