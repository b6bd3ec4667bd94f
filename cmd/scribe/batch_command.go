package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/batch"
	"scribe/internal/notifications"
	"scribe/internal/runlog"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var splits int

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Transcribe every input listed in a file",
		Long: `Reads one identifier per line (local path or URL) and transcribes each.
Lines starting with # are skipped, and only the first column of CSV rows is
used. One failed input never stops the rest of the batch; the command exits
zero as long as the batch itself ran.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open batch file: %w", err)
			}
			defer file.Close()

			inputs, err := parseInputs(file)
			if err != nil {
				return fmt.Errorf("parse batch file: %w", err)
			}
			if len(inputs) == 0 {
				return fmt.Errorf("batch file %s lists no inputs", args[0])
			}

			opts, err := ctx.pipelineOptions(splits, "")
			if err != nil {
				return err
			}
			observer := newConsoleObserver(cmd.OutOrStdout())
			driver, err := ctx.buildDriver(observer)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			notifier := notifications.NewService(cfg)

			result := driver.Run(cmd.Context(), inputs, opts)

			recordBatch(cmd, ctx, result)
			_ = notifier.NotifyBatchCompleted(cmd.Context(), len(result.Processed), len(result.Failures), result.TotalDuration)

			fmt.Fprintln(cmd.OutOrStdout(), renderBatchSummary(result))
			return nil
		},
	}

	cmd.Flags().IntVarP(&splits, "splits", "n", 0, "Number of audio segments per input (default from config)")
	return cmd
}

// parseInputs reads identifiers from r, one per line. Blank lines and #
// comments are skipped; for CSV rows only the first field counts.
func parseInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.Index(line, ","); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}
		inputs = append(inputs, line)
	}
	return inputs, scanner.Err()
}

func recordBatch(cmd *cobra.Command, ctx *commandContext, result batch.Result) {
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

	for i, assetID := range result.Processed {
		run := runlog.Run{
			Input:    assetID,
			AssetID:  assetID,
			Status:   runlog.StatusCompleted,
			Duration: result.ItemDurations[assetID],
		}
		if i < len(result.Inputs) {
			run.Input = result.Inputs[i]
		}
		if i < len(result.Outputs) {
			run.OutputPath = result.Outputs[i]
		}
		if _, err := store.Record(cmd.Context(), run); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: record run history: %v\n", err)
			return
		}
	}
	for _, failure := range result.Failures {
		run := runlog.Run{
			Input:  failure.Input,
			Status: runlog.StatusFailed,
			Error:  failure.Err.Error(),
		}
		if _, err := store.Record(cmd.Context(), run); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: record run history: %v\n", err)
			return
		}
	}
}
