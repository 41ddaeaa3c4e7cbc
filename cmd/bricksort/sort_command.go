package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bricksort/internal/inventory"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var setNumber string
	var filePath string
	var clusters int
	var seed string
	var output string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Cluster an inventory into sorting bins and render them as HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateInputFlags(setNumber, filePath); err != nil {
				return err
			}

			pipeline, err := newPipeline(ctx)
			if err != nil {
				return err
			}

			ws, err := pipeline.LoadAndEnrich(cmd.Context(), setNumber, filePath)
			if err != nil {
				return err
			}

			summaries, usedSeed, err := pipeline.Cluster(ws, clusters, seed)
			if err != nil {
				return err
			}

			artifact, err := pipeline.Render(cmd.Context(), summaries)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, []byte(artifact), 0o644); err != nil {
				return fmt.Errorf("write output %q: %w", output, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, clusterTable(summaries))
			fmt.Fprintf(out, "Seed: %d (pass --seed %d to reproduce)\n", usedSeed, usedSeed)
			fmt.Fprintf(out, "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&setNumber, "set", "", "Catalog set number to load (requires a Rebrickable API key)")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Inventory file to load")
	cmd.Flags().IntVarP(&clusters, "clusters", "k", 0, "Number of sorting bins")
	cmd.Flags().StringVar(&seed, "seed", "", "Clustering seed for reproducible runs")
	cmd.Flags().StringVarP(&output, "output", "o", "clusters.html", "Output HTML path")
	_ = cmd.MarkFlagRequired("clusters")

	return cmd
}

func newPipeline(ctx *commandContext) (*inventory.Pipeline, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return inventory.NewPipeline(cfg, logger), nil
}

func validateInputFlags(setNumber, filePath string) error {
	hasSet := strings.TrimSpace(setNumber) != ""
	hasFile := strings.TrimSpace(filePath) != ""
	if hasSet == hasFile {
		return errors.New("exactly one of --set or --file must be provided")
	}
	return nil
}

func memberList(members []int64) string {
	parts := make([]string, len(members))
	for i, id := range members {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
