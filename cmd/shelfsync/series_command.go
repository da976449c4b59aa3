package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shelfsync/internal/translate"
)

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	var libraryFlag string

	cmd := &cobra.Command{
		Use:   "series",
		Short: "List the series of a Komga library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			library, err := requireLibrary(cfg, libraryFlag)
			if err != nil {
				return err
			}

			client, err := ctx.openClient(cmd.Context())
			if err != nil {
				return err
			}
			series, listErr := client.ListSeries(cmd.Context(), library)

			rows := make([][]string, 0, len(series))
			for i := range series {
				sr := &series[i]
				rows = append(rows, []string{
					sr.Name,
					sr.ID,
					strconv.Itoa(translate.TotalBooks(sr)),
					sr.Metadata.Status,
					yesNo(sr.Oneshot),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "ID", "Books", "Status", "One-shot"},
				rows,
				3,
			))
			fmt.Fprintf(out, "%d series\n", len(series))
			if listErr != nil {
				return fmt.Errorf("listing incomplete: %w", listErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library identifier to list")
	return cmd
}
