package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var libraryFlag string
	var outputFlag string
	var libraryRootFlag string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Push series.json metadata back into Komga",
		Long: `Import reads the series.json sidecar of every series in the library and
pushes sparse metadata patches to the server. Only fields present in the
sidecar are sent; series without a readable sidecar are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyExportOverrides(cfg, outputFlag, libraryRootFlag, false); err != nil {
				return err
			}
			library, err := requireLibrary(cfg, libraryFlag)
			if err != nil {
				return err
			}

			s, cleanup, err := ctx.newSyncer(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := s.Import(cmd.Context(), library)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed updates for %d of %d series (%d skipped, %d failed)\n",
				summary.Pushed, summary.SeriesSeen, summary.Skipped, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library identifier to sync")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Read sidecars from this directory instead of the series folders")
	cmd.Flags().StringVar(&libraryRootFlag, "library-root", "", "Server-side path prefix replaced by --output")
	return cmd
}
