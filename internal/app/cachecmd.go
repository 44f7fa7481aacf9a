package app

import (
	"fmt"
	"os"

	"github.com/JustinTDCT/VHash/internal/cache"
	"github.com/JustinTDCT/VHash/internal/scanner"
	"github.com/JustinTDCT/VHash/internal/verrors"
)

// CacheCmd operates directly on the hash cache: find or delete a single
// entry, clear everything, or prune expired records.
func CacheCmd(conf *CacheConfig) error {
	if (conf.Find || conf.Del) && conf.Path == "" {
		return fmt.Errorf("path should not be empty: %w", verrors.ParamInvalid)
	}

	db := cache.New(conf.CacheURL)
	if err := db.Init(); err != nil {
		return err
	}
	defer db.Close()

	parent, file := scanner.PathSplit(conf.Path)
	switch {
	case conf.Find:
		items, err := db.Get(cache.Key{Parent: parent, File: file})
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Fprintf(os.Stdout, "FILE: %s\nHASH: 0x%016x\n", conf.Path, it.FileHash)
		}
	case conf.Del:
		return db.Del(cache.Key{Parent: parent, File: file})
	case conf.Clear:
		return db.Clear()
	case conf.Prune:
		return db.Prune(conf.PrunePeriod)
	}
	return nil
}
