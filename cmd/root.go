package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "musicxml",
	Short: "MusicXML translation tools",
	Long:  `Converts between MusicXML scores, an exact score model and MIDI.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
