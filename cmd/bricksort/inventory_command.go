package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInventoryCommand(ctx *commandContext) *cobra.Command {
	var setNumber string
	var filePath string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Normalize and enrich an inventory without clustering it",
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
				return fmt.Errorf("%w (supported formats: %s)", err, pipeline.Extensions())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, inventoryTable(ws))
			fmt.Fprintf(out, "%d distinct parts\n", len(ws.Parts))
			return nil
		},
	}

	cmd.Flags().StringVar(&setNumber, "set", "", "Catalog set number to load (requires a Rebrickable API key)")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Inventory file to load")

	return cmd
}
