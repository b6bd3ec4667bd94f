package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"scribe/internal/batch"
	"scribe/internal/pipeline"
	"scribe/internal/runlog"
)

func renderRunSummary(result pipeline.Result, wall time.Duration) string {
	status := "completed"
	if result.FailedSegments > 0 {
		status = fmt.Sprintf("partial (%d of %d segments failed)", result.FailedSegments, result.Segments)
	}
	rows := [][]string{
		{"Asset", result.AssetID},
		{"Source", result.SourcePath},
		{"Transcript", result.OutputPath},
		{"Segments", strconv.Itoa(result.Segments)},
		{"Status", status},
		{"Elapsed", formatDuration(wall)},
	}
	return renderTable([]string{"Field", "Value"}, rows)
}

func renderBatchSummary(result batch.Result) string {
	rows := make([][]string, 0, len(result.Processed)+len(result.Failures))
	for i, assetID := range result.Processed {
		output := ""
		if i < len(result.Outputs) {
			output = result.Outputs[i]
		}
		rows = append(rows, []string{
			assetID,
			"completed",
			formatDuration(result.ItemDurations[assetID]),
			output,
		})
	}
	for _, failure := range result.Failures {
		rows = append(rows, []string{failure.Input, "failed", "-", failure.Err.Error()})
	}

	var b strings.Builder
	b.WriteString(renderTable([]string{"Input", "Status", "Duration", "Output"}, rows, 3))
	fmt.Fprintf(&b, "\n%d transcribed, %d failed in %s",
		len(result.Processed), len(result.Failures), formatDuration(result.TotalDuration))
	return b.String()
}

func renderHistory(runs []runlog.Run) string {
	if len(runs) == 0 {
		return "No runs recorded"
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		segments := ""
		if run.Segments > 0 {
			segments = strconv.Itoa(run.Segments)
			if run.FailedSegments > 0 {
				segments = fmt.Sprintf("%d (%d failed)", run.Segments, run.FailedSegments)
			}
		}
		detail := run.OutputPath
		if run.Status == runlog.StatusFailed {
			detail = run.Error
		}
		rows = append(rows, []string{
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.AssetID,
			string(run.Status),
			segments,
			formatDuration(run.Duration),
			detail,
		})
	}
	return renderTable([]string{"When", "Asset", "Status", "Segments", "Duration", "Output"}, rows, 4, 5)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
