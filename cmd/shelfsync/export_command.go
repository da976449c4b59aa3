package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var libraryFlag string
	var outputFlag string
	var libraryRootFlag string
	var coversFlag bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write series.json sidecars for a Komga library",
		Long: `Export fetches every series in the library, translates its metadata into
the Mylar series.json schema, and writes one sidecar per series. Deleted
series, one-shots, and series without books or a storage path are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyExportOverrides(cfg, outputFlag, libraryRootFlag, coversFlag); err != nil {
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

			summary, err := s.Export(cmd.Context(), library)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d series (%d skipped, %d failed)\n",
				summary.Written, summary.SeriesSeen, summary.Skipped, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library identifier to export")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write sidecars under this directory instead of the series folders")
	cmd.Flags().StringVar(&libraryRootFlag, "library-root", "", "Server-side path prefix replaced by --output")
	cmd.Flags().BoolVar(&coversFlag, "covers", false, "Download each series poster as cover.jpg")
	return cmd
}
