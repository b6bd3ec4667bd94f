package segment

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"scribe/internal/asset"
	"scribe/internal/services"
)

// Cutter writes one time range of the source's audio to dest.
type Cutter interface {
	Cut(ctx context.Context, source, dest string, startMs, durationMs int64) error
}

// FFmpegCutter shells out to ffmpeg for audio slicing.
type FFmpegCutter struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewFFmpegCutter returns a Cutter using the given ffmpeg binary.
func NewFFmpegCutter(binary string) *FFmpegCutter {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &FFmpegCutter{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *FFmpegCutter) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

// Cut extracts [startMs, startMs+durationMs) of the source audio into dest as
// AAC in an m4a container.
func (c *FFmpegCutter) Cut(ctx context.Context, source, dest string, startMs, durationMs int64) error {
	if durationMs <= 0 {
		return fmt.Errorf("cut: invalid duration %dms", durationMs)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatMs(startMs),
		"-t", formatMs(durationMs),
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-c:a", "aac",
		dest,
	}
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.binary, args...)
	}
	cmd := exec.CommandContext(ctx, c.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg cut: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatMs(ms int64) string {
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}

// Segmenter writes the planned slices of an asset to disk.
type Segmenter struct {
	cutter Cutter
}

// New returns a Segmenter backed by the given cutter.
func New(cutter Cutter) *Segmenter {
	return &Segmenter{cutter: cutter}
}

// Split partitions the asset into n segments under outDir. The source file is
// left in place. Zero-length ranges produce empty segment files rather than
// errors so short media still yields exactly n outcomes downstream.
func (s *Segmenter) Split(ctx context.Context, media asset.MediaAsset, n int, outDir string) ([]Segment, error) {
	ranges, err := Plan(media.DurationMs, n)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrSegmentation, "segmenting", "ensure output dir", outDir, err)
	}

	segments := make([]Segment, 0, len(ranges))
	for _, r := range ranges {
		dest := Path(outDir, media.ID, r.Index)
		if r.EndMs <= r.StartMs {
			if err := os.WriteFile(dest, nil, 0o644); err != nil {
				return nil, services.Wrap(services.ErrSegmentation, "segmenting", "write empty slice", dest, err)
			}
		} else if err := s.cutter.Cut(ctx, media.SourcePath, dest, r.StartMs, r.EndMs-r.StartMs); err != nil {
			return nil, services.Wrap(services.ErrSegmentation, "segmenting", "write slice", dest, err)
		}
		segments = append(segments, Segment{
			AssetID: media.ID,
			Index:   r.Index,
			Path:    dest,
			StartMs: r.StartMs,
			EndMs:   r.EndMs,
		})
	}
	return segments, nil
}
