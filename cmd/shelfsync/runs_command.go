package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shelfsync/internal/journal"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show sync run history",
		Long: `Without arguments, lists the most recent runs recorded in the journal.
With a run identifier, shows the per-series outcomes of that run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("run journal is disabled (journal.enabled = false)")
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunEvents(cmd, store, args[0])
			}
			return printRecentRuns(cmd, store, limitFlag)
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *journal.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		finished := "running"
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Mode,
			run.LibraryID,
			strconv.Itoa(run.SeriesSeen),
			strconv.Itoa(run.Written),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Failed),
			finished,
			run.ID,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Started", "Mode", "Library", "Seen", "Done", "Skipped", "Failed", "Duration", "Run ID"},
		rows,
		4, 5, 6, 7,
	))
	return nil
}

func printRunEvents(cmd *cobra.Command, store *journal.Store, runID string) error {
	events, err := store.RunEvents(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No events recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			ev.SeriesName,
			ev.SeriesID,
			ev.Outcome,
			ev.Detail,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Series", "ID", "Outcome", "Detail"},
		rows,
	))
	return nil
}
