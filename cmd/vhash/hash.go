package main

import (
	"github.com/spf13/cobra"

	"github.com/JustinTDCT/VHash/internal/app"
	"github.com/JustinTDCT/VHash/internal/config"
)

var hashConf app.RunConfig

var hashCmd = &cobra.Command{
	Use:   "hash <path>",
	Short: "Generating hash for video or image files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hashConf.Path = args[0]
		applyDefaults(&hashConf)
		return app.HashCmd(&hashConf)
	},
}

func init() {
	addRunFlags(hashCmd, &hashConf)
	rootCmd.AddCommand(hashCmd)
}

// addRunFlags registers the flag surface shared by hash and dup.
func addRunFlags(cmd *cobra.Command, conf *app.RunConfig) {
	cmd.Flags().StringSliceVarP(&conf.Ext, "ext", "e", nil, "file extension filter (i.e. -e mp4,mkv)")
	cmd.Flags().StringVarP(&conf.CacheURL, "cache", "c", "", "cache file or url")
	cmd.Flags().StringVarP(&conf.Output, "output", "o", "", "output file")
	cmd.Flags().IntVarP(&conf.Jobs, "jobs", "j", 0, "parallel jobs")
	cmd.Flags().BoolVarP(&conf.UseCache, "use-cache", "C", false, "use cache")
	cmd.Flags().BoolVarP(&conf.Recursive, "recursive", "r", false, "recursively find files")
	cmd.Flags().BoolVarP(&conf.NoProgress, "no-progress", "P", false, "not print progress bar")
}

// applyDefaults folds the environment configuration under the flags.
// Silent mode also turns the progress bar off.
func applyDefaults(conf *app.RunConfig) {
	if silent {
		conf.NoProgress = true
	}
	cfg := config.Load()
	conf.FFmpegPath = cfg.FFmpegPath
	conf.FFprobePath = cfg.FFprobePath
	if conf.CacheURL == "" {
		conf.CacheURL = cfg.CachePath
	}
	if conf.Jobs == 0 {
		conf.Jobs = cfg.Jobs
	}
}
