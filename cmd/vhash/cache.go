package main

import (
	"github.com/spf13/cobra"

	"github.com/JustinTDCT/VHash/internal/app"
	"github.com/JustinTDCT/VHash/internal/config"
)

var cacheConf app.CacheConfig

var cacheCmd = &cobra.Command{
	Use:   "cache [path]",
	Short: "Operating on hash cache",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cacheConf.Path = args[0]
		}
		if cacheConf.CacheURL == "" {
			cacheConf.CacheURL = config.Load().CachePath
		}
		return app.CacheCmd(&cacheConf)
	},
}

func init() {
	cacheCmd.Flags().StringVarP(&cacheConf.CacheURL, "cache", "c", "", "cache file or url")
	cacheCmd.Flags().BoolVarP(&cacheConf.Find, "find", "f", false, "find cache item")
	cacheCmd.Flags().BoolVarP(&cacheConf.Del, "del", "d", false, "delete cache item")
	cacheCmd.Flags().BoolVarP(&cacheConf.Clear, "clear", "C", false, "clear all hash cache")
	cacheCmd.Flags().BoolVarP(&cacheConf.Prune, "prune", "p", false, "prune expired hash cache")
	cacheCmd.Flags().Int64VarP(&cacheConf.PrunePeriod, "prune-period", "P", 7*24*60*60, "prune period in seconds")
	rootCmd.AddCommand(cacheCmd)
}
