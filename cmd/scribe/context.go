package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"scribe/internal/batch"
	"scribe/internal/config"
	"scribe/internal/ingest"
	"scribe/internal/logging"
	"scribe/internal/media/ffprobe"
	"scribe/internal/pipeline"
	"scribe/internal/segment"
	"scribe/internal/transcribe"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

type ffprobeProber struct {
	binary string
}

func (p *ffprobeProber) DurationMs(ctx context.Context, path string) (int64, error) {
	result, err := ffprobe.Inspect(ctx, p.binary, path)
	if err != nil {
		return 0, err
	}
	return result.DurationMs()
}

// buildOrchestrator assembles the pipeline from configuration. The observer
// may be nil.
func (c *commandContext) buildOrchestrator(observer pipeline.Observer) (*pipeline.Orchestrator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	fetcher := &ingest.Dispatcher{
		YouTube: ingest.NewYTDLPFetcher(cfg.Tools.YTDLP, cfg.Paths.WorkDir),
		HTTP:    ingest.NewHTTPFetcher(cfg.Paths.WorkDir, 30*time.Minute),
	}
	segmenter := segment.New(segment.NewFFmpegCutter(cfg.Tools.FFmpeg))
	client := transcribe.NewClient(
		transcribe.NewWhisperBackend(cfg.Backend),
		cfg.Backend.MaxAttempts,
		time.Duration(cfg.Backend.RetryDelay)*time.Second,
		logger,
	)
	prober := &ffprobeProber{binary: cfg.Tools.FFprobe}

	return pipeline.New(fetcher, prober, segmenter, client, observer, logger,
		cfg.Paths.WorkDir, cfg.Paths.OutputDir), nil
}

func (c *commandContext) buildDriver(observer pipeline.Observer) (*batch.Driver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	orchestrator, err := c.buildOrchestrator(observer)
	if err != nil {
		return nil, err
	}
	return batch.NewDriver(orchestrator, cfg.Pipeline.BatchWorkers, logger), nil
}

func (c *commandContext) pipelineOptions(splits int, output string) (pipeline.Options, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	if splits <= 0 {
		splits = cfg.Pipeline.Splits
	}
	if output != "" {
		if !filepath.IsAbs(output) && filepath.Dir(output) == "." {
			output = filepath.Join(cfg.Paths.OutputDir, output)
		}
	}
	return pipeline.Options{
		Splits:       splits,
		OutputPath:   output,
		Concurrency:  cfg.Pipeline.Concurrency,
		DeleteSource: cfg.Pipeline.DeleteSource,
	}, nil
}
