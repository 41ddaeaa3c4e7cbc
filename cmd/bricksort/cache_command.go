package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bricksort/internal/partcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Part metadata cache utilities",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache contents summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := partcache.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stat(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Database", store.Path()},
					{"Cached parts", strconv.FormatInt(stats.Parts, 10)},
					{"Missing images", strconv.FormatInt(stats.MissingImages, 10)},
				},
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}
