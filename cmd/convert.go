package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/musicxml/midi"
	"github.com/jsphweid/musicxml/model"
	"github.com/jsphweid/musicxml/mxl"
	"github.com/jsphweid/musicxml/translate"
	"github.com/jsphweid/musicxml/util"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <score.musicxml> [out.mid]",
	Short: "Converts a MusicXML score to MIDI",
	Long:  `Converts a MusicXML score to MIDI`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 || len(args) > 2 {
			panic("Need a MusicXML file and optionally an output path...")
		}
		out := ""
		if len(args) == 2 {
			out = args[1]
		} else {
			out = strings.TrimSuffix(args[0], ".musicxml") + ".mid"
		}
		convert(args[0], out)
	},
}

func readScore(path string) *model.Score {
	f := util.OpenFileOrPanic(path)
	defer f.Close()

	doc, err := mxl.Parse(f)
	if err != nil {
		panic("Could not parse score: " + err.Error())
	}
	score, err := translate.ImportScore(doc, translate.Options{RecombineTies: true})
	if err != nil {
		panic("Could not read score: " + err.Error())
	}
	return score
}

func convert(in, out string) {
	score := readScore(in)

	f, err := os.Create(out)
	if err != nil {
		panic("Could not create output file: " + err.Error())
	}
	defer f.Close()

	if err := midi.WriteSMF(score, f); err != nil {
		panic("Could not write MIDI: " + err.Error())
	}
	fmt.Printf("Wrote %v\n", out)
}
