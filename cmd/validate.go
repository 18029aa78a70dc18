package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsphweid/musicxml/mxl"
	"github.com/jsphweid/musicxml/translate"
	"github.com/jsphweid/musicxml/util"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <score.musicxml>",
	Short: "Checks that a score survives a translation round trip",
	Long:  `Checks that a score survives a translation round trip`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		if err := validateFile(args[0]); err != nil {
			fmt.Printf("invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("ok")
	},
}

func validateFile(path string) error {
	f := util.OpenFileOrPanic(path)
	defer f.Close()

	doc, err := mxl.Parse(f)
	if err != nil {
		return err
	}
	return validateDoc(doc)
}

// validateDoc imports the document, re-exports it and imports it again:
// a score whose two imports disagree would not survive editing.
func validateDoc(doc *mxl.ScorePartwise) error {
	opts := translate.Options{RecombineTies: true}
	score, err := translate.ImportScore(doc, opts)
	if err != nil {
		return err
	}
	redone, err := translate.ExportScore(score, translate.Options{})
	if err != nil {
		return err
	}
	again, err := translate.ImportScore(redone, opts)
	if err != nil {
		return err
	}
	if !score.Equal(again) {
		return errUnstable
	}
	return nil
}

var errUnstable = fmt.Errorf("score does not survive a translation round trip")
