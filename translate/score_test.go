package translate

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/musicxml/model"
	"github.com/jsphweid/musicxml/mxl"
)

func twoPartScore() *model.Score {
	return &model.Score{
		Title:    "Study No. 1",
		Composer: "Anon.",
		Parts: []*model.Part{
			{
				ID:   "P1",
				Name: "Flute",
				Measures: []*model.Measure{
					{
						Number: 1,
						Time:   &model.TimeSignature{Beats: 4, BeatType: 4},
						Elements: []model.MeasureElement{
							model.Note{Pitch: c4(), Duration: big.NewRat(1, 2)},
							model.Note{Pitch: e4(), Duration: big.NewRat(1, 2)},
						},
					},
					{
						Number: 2,
						Elements: []model.MeasureElement{
							model.Rest{Duration: big.NewRat(1, 1), WholeMeasure: true},
						},
					},
				},
			},
			{
				ID:   "P2",
				Name: "Cello",
				Measures: []*model.Measure{
					{
						Number: 1,
						Time:   &model.TimeSignature{Beats: 4, BeatType: 4},
						Elements: []model.MeasureElement{
							model.Chord{Pitches: []model.Pitch{c4(), g4()}, Duration: big.NewRat(1, 1)},
						},
					},
					{
						Number: 2,
						Elements: []model.MeasureElement{
							model.Note{Pitch: g4(), Duration: big.NewRat(1, 1)},
						},
					},
				},
			},
		},
	}
}

func TestScoreRoundTrip(t *testing.T) {
	score := twoPartScore()

	doc, err := ExportScore(score, Options{})
	assert.NoError(t, err)
	back, err := ImportScore(doc, Options{RecombineTies: true})
	assert.NoError(t, err)

	assert.True(t, score.Equal(back))
}

func TestScoreRoundTripThroughXML(t *testing.T) {
	score := twoPartScore()

	doc, err := ExportScore(score, Options{})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, doc.WriteTo(&buf))
	parsed, err := mxl.Parse(&buf)
	assert.NoError(t, err)

	back, err := ImportScore(parsed, Options{RecombineTies: true})
	assert.NoError(t, err)
	assert.True(t, score.Equal(back))
}

func TestExportFillsDocumentSkeleton(t *testing.T) {
	doc, err := ExportScore(twoPartScore(), Options{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("4.0", doc.Version)
	assert.Equal("Study No. 1", doc.Work.Title)
	assert.Equal("composer", doc.Identification.Creators[0].Type)
	assert.Equal("Anon.", doc.Identification.Creators[0].Value)
	assert.Len(doc.PartList.ScoreParts, 2)
	assert.Equal("Flute", doc.PartList.ScoreParts[0].PartName)
	assert.Len(doc.Parts, 2)
	assert.Equal(4, doc.Parts[0].Measures[0].Attributes.Time.Beats)
}

func TestImportThreadsDivisionsForward(t *testing.T) {
	// Only the first measure states divisions; the second inherits it.
	doc := &mxl.ScorePartwise{
		PartList: mxl.PartList{ScoreParts: []mxl.ScorePart{{ID: "P1", PartName: "Piano"}}},
		Parts: []mxl.Part{{
			ID: "P1",
			Measures: []mxl.Measure{
				{
					Number:     1,
					Attributes: &mxl.Attributes{Divisions: 2},
					Notes:      []mxl.Note{wirePitched("C", 4, "quarter")},
				},
				{
					Number: 2,
					Notes: []mxl.Note{{
						Rest:     &mxl.Rest{Measure: "yes"},
						Duration: 8,
					}},
				},
			},
		}},
	}
	score, err := ImportScore(doc, Options{})

	assert := assert.New(t)
	assert.NoError(err)
	rest := score.Parts[0].Measures[1].Elements[0].(model.Rest)
	assert.Zero(rest.Duration.Cmp(big.NewRat(1, 1)))
}

func TestImportWrapsErrorsWithLocation(t *testing.T) {
	doc := &mxl.ScorePartwise{
		PartList: mxl.PartList{ScoreParts: []mxl.ScorePart{{ID: "P1"}}},
		Parts: []mxl.Part{{
			ID: "P1",
			Measures: []mxl.Measure{{
				Number: 7,
				Notes:  []mxl.Note{wirePitched("C", 4, "nonsense")},
			}},
		}},
	}
	_, err := ImportScore(doc, Options{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "part P1, measure 7")
}
