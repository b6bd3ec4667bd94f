package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"scribe/internal/asset"
	"scribe/internal/fileutil"
	"scribe/internal/ingest"
	"scribe/internal/segment"
	"scribe/internal/services"
	"scribe/internal/transcribe"
)

// DurationProber reports a media file's duration in milliseconds.
type DurationProber interface {
	DurationMs(ctx context.Context, path string) (int64, error)
}

// Options configures one orchestrator run.
type Options struct {
	// Splits is the number of segments the asset is cut into.
	Splits int
	// OutputPath overrides the derived transcript location when non-empty.
	OutputPath string
	// Concurrency bounds simultaneous transcription calls for this asset.
	Concurrency int
	// DeleteSource removes the source media file after a successful run.
	DeleteSource bool
}

// Result summarizes a completed run.
type Result struct {
	AssetID        string
	SourcePath     string
	OutputPath     string
	Segments       int
	FailedSegments int
	// Elapsed is the wall-clock processing time. Zero when the run failed.
	Elapsed time.Duration
}

// Orchestrator runs the transcription pipeline for one asset at a time. It is
// safe for concurrent Process calls as long as asset IDs do not collide.
type Orchestrator struct {
	fetcher   ingest.Fetcher
	prober    DurationProber
	segmenter *segment.Segmenter
	client    *transcribe.Client
	observer  Observer
	logger    *slog.Logger

	workDir   string
	outputDir string
}

// New wires an Orchestrator from its collaborators. A nil observer defaults
// to NoopObserver.
func New(fetcher ingest.Fetcher, prober DurationProber, segmenter *segment.Segmenter, client *transcribe.Client, observer Observer, logger *slog.Logger, workDir, outputDir string) *Orchestrator {
	if observer == nil {
		observer = NoopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		fetcher:   fetcher,
		prober:    prober,
		segmenter: segmenter,
		client:    client,
		observer:  observer,
		logger:    logger,
		workDir:   workDir,
		outputDir: outputDir,
	}
}

// Process runs the full pipeline for one input identifier. Segment-level
// transcription failures degrade to placeholder outcomes; resolving and
// segmentation failures return an error with an empty Result.Elapsed.
func (o *Orchestrator) Process(ctx context.Context, input string, opts Options) (Result, error) {
	started := time.Now()

	result, err := o.process(ctx, input, opts)
	if err != nil {
		o.observer.AssetFinished(result.AssetID, 0, err)
		o.logger.Error("asset failed", "input", input, "asset", result.AssetID, "error", err)
		return result, err
	}

	result.Elapsed = time.Since(started)
	o.observer.AssetFinished(result.AssetID, result.Elapsed, nil)
	o.logger.Info("asset completed",
		"asset", result.AssetID,
		"output", result.OutputPath,
		"segments", result.Segments,
		"failed_segments", result.FailedSegments,
		"elapsed", result.Elapsed)
	return result, nil
}

func (o *Orchestrator) process(ctx context.Context, input string, opts Options) (Result, error) {
	var result Result

	media, err := o.resolve(ctx, input)
	if err != nil {
		return result, err
	}
	result.AssetID = media.ID
	result.SourcePath = media.SourcePath
	o.observer.AssetResolved(media.ID, media.SourcePath)

	splits := opts.Splits
	if splits <= 0 {
		splits = 1
	}
	segments, err := o.segmenter.Split(ctx, media, splits, o.workDir)
	if err != nil {
		return result, err
	}
	result.Segments = len(segments)
	o.observer.AssetSegmented(media.ID, len(segments))
	o.logger.Info("asset segmented", "asset", media.ID, "segments", len(segments))

	// Cleanup runs whether transcription finishes or the context dies so
	// large intermediate audio files never accumulate.
	defer o.cleanup(media, segments, opts.DeleteSource)

	outcomes := o.transcribeAll(ctx, media.ID, segments, opts.Concurrency)
	if err := ctx.Err(); err != nil {
		return result, err
	}
	for _, outcome := range outcomes {
		if outcome.Status == transcribe.StatusFailed {
			result.FailedSegments++
		}
	}

	outputPath, err := o.reassemble(media.ID, outcomes, opts.OutputPath)
	if err != nil {
		return result, err
	}
	result.OutputPath = outputPath
	o.observer.TranscriptAssembled(media.ID, outputPath)
	return result, nil
}

func (o *Orchestrator) resolve(ctx context.Context, input string) (asset.MediaAsset, error) {
	var media asset.MediaAsset

	sourcePath := strings.TrimSpace(input)
	if fileutil.FileExists(sourcePath) {
		id, err := asset.ExtractID(sourcePath)
		if err != nil {
			return media, err
		}
		media.ID = id
		media.SourcePath = sourcePath
		o.logger.Info("processing local file", "asset", id, "path", sourcePath)
	} else {
		// Identifier parsing happens before any network call so bad input
		// fails fast.
		id, err := asset.ExtractID(input)
		if err != nil {
			return media, err
		}
		o.logger.Info("fetching remote media", "asset", id, "input", input)
		fetched, err := o.fetcher.Fetch(ctx, input)
		if err != nil {
			return media, err
		}
		media.ID = id
		media.SourcePath = fetched
	}

	durationMs, err := o.prober.DurationMs(ctx, media.SourcePath)
	if err != nil {
		return media, services.Wrap(services.ErrSegmentation, "segmenting", "probe duration", media.SourcePath, err)
	}
	media.DurationMs = durationMs
	return media, nil
}

// transcribeAll fans segments out to at most concurrency workers and returns
// one outcome per segment, positioned by index. Exhausted or permanently
// failed segments become placeholder outcomes here; only the caller's context
// ending is surfaced as an error, by the caller checking ctx.Err.
func (o *Orchestrator) transcribeAll(ctx context.Context, assetID string, segments []segment.Segment, concurrency int) []transcribe.Outcome {
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]transcribe.Outcome, len(segments))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, seg := range segments {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// Remaining segments get failed placeholder outcomes.
			outcomes[seg.Index-1] = transcribe.Outcome{SegmentIndex: seg.Index, Status: transcribe.StatusFailed}
			continue
		}

		wg.Add(1)
		go func(seg segment.Segment) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome, err := o.client.Transcribe(ctx, seg)
			if err != nil && !services.AssetFatal(err) {
				o.logger.Warn("segment failed, continuing with placeholder",
					"asset", assetID, "segment", seg.Index, "error", err)
			}
			outcomes[seg.Index-1] = outcome
			o.observer.SegmentTranscribed(assetID, seg.Index, len(segments), outcome.Status)
		}(seg)
	}

	wg.Wait()
	return outcomes
}

// reassemble concatenates outcome texts strictly by segment index. Texts are
// joined without separators, matching the historical transcript format.
func (o *Orchestrator) reassemble(assetID string, outcomes []transcribe.Outcome, outputPath string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		outputPath = filepath.Join(o.outputDir, assetID+".txt")
	}
	if err := fileutil.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return "", fmt.Errorf("ensure output dir: %w", err)
	}

	var builder strings.Builder
	for _, outcome := range outcomes {
		builder.WriteString(outcome.Text)
	}
	if err := os.WriteFile(outputPath, []byte(builder.String()), 0o644); err != nil {
		return "", fmt.Errorf("write transcript %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// cleanup deletes segment files unconditionally and the source only when
// requested. Missing files are logged as warnings, never errors.
func (o *Orchestrator) cleanup(media asset.MediaAsset, segments []segment.Segment, deleteSource bool) {
	for _, seg := range segments {
		removed, err := fileutil.RemoveIfExists(seg.Path)
		if err != nil {
			o.logger.Warn("cleanup: remove segment", "asset", media.ID, "segment", seg.Index, "error", err)
			continue
		}
		if !removed {
			o.logger.Warn("cleanup: segment already removed", "asset", media.ID, "segment", seg.Index)
		}
	}
	if deleteSource {
		if _, err := fileutil.RemoveIfExists(media.SourcePath); err != nil {
			o.logger.Warn("cleanup: remove source", "asset", media.ID, "error", err)
		}
	}
}
