package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scribe/internal/pipeline"
)

// Processor runs the pipeline for one input. *pipeline.Orchestrator satisfies
// this.
type Processor interface {
	Process(ctx context.Context, input string, opts pipeline.Options) (pipeline.Result, error)
}

// Failure records one input that did not produce a transcript.
type Failure struct {
	Input string
	Err   error
}

// Result aggregates a whole batch.
type Result struct {
	// Processed lists the asset IDs that produced transcripts, in input order.
	Processed []string
	// Inputs lists the original identifiers behind Processed, index-aligned.
	Inputs []string
	// ItemDurations maps each input's asset ID (or the raw input when no
	// asset was resolved) to its processing time. Failed items report zero.
	ItemDurations map[string]time.Duration
	// TotalDuration is the wall-clock time for the whole batch.
	TotalDuration time.Duration
	// Outputs lists the transcript files written, in input order.
	Outputs []string
	// Failures lists the inputs that failed, in input order.
	Failures []Failure
}

// Driver iterates a batch of inputs through a Processor.
type Driver struct {
	proc    Processor
	workers int
	logger  *slog.Logger
}

// NewDriver builds a Driver running up to workers inputs concurrently.
func NewDriver(proc Processor, workers int, logger *slog.Logger) *Driver {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{proc: proc, workers: workers, logger: logger}
}

type itemResult struct {
	position int
	input    string
	result   pipeline.Result
	err      error
}

// Run processes every input. Per-item failures are logged and recorded but do
// not abort the remaining inputs. Cancellation of ctx stops scheduling new
// items; in-flight items finish their own cleanup.
func (d *Driver) Run(ctx context.Context, inputs []string, opts pipeline.Options) Result {
	started := time.Now()

	collected := make([]itemResult, len(inputs))
	results := make(chan itemResult)

	var collector sync.WaitGroup
	collector.Add(1)
	go func() {
		defer collector.Done()
		for item := range results {
			collected[item.position] = item
		}
	}()

	sem := make(chan struct{}, d.workers)
	var wg sync.WaitGroup
	for position, input := range inputs {
		if err := ctx.Err(); err != nil {
			results <- itemResult{position: position, input: input, err: err}
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results <- itemResult{position: position, input: input, err: ctx.Err()}
			continue
		}

		wg.Add(1)
		go func(position int, input string) {
			defer wg.Done()
			defer func() { <-sem }()

			d.logger.Info("processing batch item", "position", position+1, "total", len(inputs), "input", input)
			res, err := d.proc.Process(ctx, input, opts)
			results <- itemResult{position: position, input: input, result: res, err: err}
		}(position, input)
	}
	wg.Wait()
	close(results)
	collector.Wait()

	return d.assemble(collected, time.Since(started))
}

func (d *Driver) assemble(collected []itemResult, total time.Duration) Result {
	result := Result{
		ItemDurations: make(map[string]time.Duration, len(collected)),
		TotalDuration: total,
	}
	for _, item := range collected {
		key := item.result.AssetID
		if key == "" {
			key = item.input
		}
		if item.err != nil {
			result.ItemDurations[key] = 0
			result.Failures = append(result.Failures, Failure{Input: item.input, Err: item.err})
			d.logger.Error("batch item failed", "input", item.input, "error", item.err)
			continue
		}
		result.ItemDurations[key] = item.result.Elapsed
		result.Processed = append(result.Processed, item.result.AssetID)
		result.Inputs = append(result.Inputs, item.input)
		result.Outputs = append(result.Outputs, item.result.OutputPath)
	}
	return result
}
