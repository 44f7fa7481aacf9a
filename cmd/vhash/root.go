package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/JustinTDCT/VHash/internal/version"
)

var silent bool

var rootCmd = &cobra.Command{
	Use:           "vhash",
	Short:         "Video and image hash tool",
	Long:          "vhash computes 64-bit perceptual fingerprints for image and video files\nand finds visually identical duplicates across a directory tree.",
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if silent {
			zerolog.SetGlobalLevel(zerolog.Disabled)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&silent, "silent", "s", false, "run in silent way")
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}
