package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsphweid/musicxml/db"
	"github.com/jsphweid/musicxml/model"
	"github.com/jsphweid/musicxml/util"
)

var inspectMetadata bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectMetadata, "metadata", false, "look up catalog metadata for the file")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score.musicxml>",
	Short: "Inspects a score",
	Long:  `Inspects a score`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	score := readScore(path)

	if inspectMetadata {
		fillFromMetadata(score, filepath.Base(path))
	}

	if score.Title != "" {
		fmt.Printf("title: %v\n", score.Title)
	}
	if score.Composer != "" {
		fmt.Printf("composer: %v\n", score.Composer)
	}
	fmt.Printf("parts: %v\n", len(score.Parts))
	for _, part := range score.Parts {
		notes, rests, chords, tuplets := countElements(part)
		fmt.Printf("  %v (%v): %v measures, %v notes, %v rests, %v chords, %v tuplets\n",
			part.ID, part.Name, len(part.Measures), notes, rests, chords, tuplets)
	}
}

// fillFromMetadata backfills identification the document itself lacks and
// prints whatever the catalog knows about the file.
func fillFromMetadata(score *model.Score, filename string) {
	metadatas := db.GetScoreMetadatas([]string{filename})
	for _, key := range util.GetKeys(metadatas) {
		fmt.Printf("metadata: %+v\n", metadatas[key])
	}

	meta, ok := metadatas[filename]
	if !ok {
		return
	}
	if score.Title == "" {
		score.Title = meta.Title
	}
	if score.Composer == "" {
		score.Composer = meta.Composer
	}
}

func countElements(part *model.Part) (notes, rests, chords, tuplets int) {
	var walk func(elems []model.MeasureElement)
	walk = func(elems []model.MeasureElement) {
		for _, el := range elems {
			switch e := el.(type) {
			case model.Note:
				notes++
			case model.Rest:
				rests++
			case model.Chord:
				chords++
			case model.Tuplet:
				tuplets++
				walk(e.Elements)
			}
		}
	}
	for _, m := range part.Measures {
		walk(m.Elements)
	}
	return
}
