package main

import (
	"github.com/spf13/cobra"

	"github.com/JustinTDCT/VHash/internal/app"
)

var dupConf app.RunConfig

var dupCmd = &cobra.Command{
	Use:   "dup <path>",
	Short: "Finding duplicate video or image files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dupConf.Path = args[0]
		applyDefaults(&dupConf)
		return app.DupCmd(&dupConf)
	},
}

func init() {
	addRunFlags(dupCmd, &dupConf)
	rootCmd.AddCommand(dupCmd)
}
