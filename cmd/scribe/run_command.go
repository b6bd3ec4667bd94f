package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/notifications"
	"scribe/internal/pipeline"
	"scribe/internal/runlog"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var splits int
	var output string

	cmd := &cobra.Command{
		Use:   "run <file-or-url>",
		Short: "Transcribe a single media file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			opts, err := ctx.pipelineOptions(splits, output)
			if err != nil {
				return err
			}
			observer := newConsoleObserver(cmd.OutOrStdout())
			orchestrator, err := ctx.buildOrchestrator(observer)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			notifier := notifications.NewService(cfg)

			started := time.Now()
			result, runErr := orchestrator.Process(cmd.Context(), input, opts)

			recordRun(cmd, ctx, input, result, runErr)

			if runErr != nil {
				_ = notifier.NotifyRunFailed(cmd.Context(), input, runErr)
				return runErr
			}
			_ = notifier.NotifyRunCompleted(cmd.Context(), result.AssetID, result.OutputPath, result.Elapsed)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderRunSummary(result, time.Since(started)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&splits, "splits", "n", 0, "Number of audio segments (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Transcript output path (default {asset id}.txt in the output directory)")
	return cmd
}

// recordRun appends the run to the history database. History failures are
// reported but never fail the run itself.
func recordRun(cmd *cobra.Command, ctx *commandContext, input string, result pipeline.Result, runErr error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return
	}
	store, err := runlog.Open(cfg.Paths.HistoryDB)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: run history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	run := runlog.Run{
		Input:          input,
		AssetID:        result.AssetID,
		OutputPath:     result.OutputPath,
		Segments:       result.Segments,
		FailedSegments: result.FailedSegments,
		Duration:       result.Elapsed,
	}
	switch {
	case runErr != nil:
		run.Status = runlog.StatusFailed
		run.Error = runErr.Error()
	case result.FailedSegments > 0:
		run.Status = runlog.StatusPartial
	default:
		run.Status = runlog.StatusCompleted
	}
	if _, err := store.Record(cmd.Context(), run); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: record run history: %v\n", err)
	}
}
