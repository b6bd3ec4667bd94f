package ingest

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"scribe/internal/asset"
	"scribe/internal/fileutil"
	"scribe/internal/services"
)

// YTDLPFetcher downloads the audio track of a video via yt-dlp.
type YTDLPFetcher struct {
	binary        string
	workDir       string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewYTDLPFetcher returns a fetcher that writes downloads into workDir.
func NewYTDLPFetcher(binary, workDir string) *YTDLPFetcher {
	if strings.TrimSpace(binary) == "" {
		binary = "yt-dlp"
	}
	return &YTDLPFetcher{binary: binary, workDir: workDir}
}

// WithCommandRunner sets a custom command runner (for testing).
func (f *YTDLPFetcher) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	f.commandRunner = runner
}

// Fetch downloads the best audio stream as m4a named {assetID}.m4a. The
// download is skipped when the file already exists from an earlier run.
func (f *YTDLPFetcher) Fetch(ctx context.Context, identifier string) (string, error) {
	id, err := asset.ExtractID(identifier)
	if err != nil {
		return "", err
	}
	if err := fileutil.EnsureDir(f.workDir); err != nil {
		return "", services.Wrap(services.ErrIngestion, "resolving", "ensure work dir", f.workDir, err)
	}

	dest := filepath.Join(f.workDir, id+".m4a")
	if fileutil.FileExists(dest) {
		return dest, nil
	}

	args := []string{
		"--no-playlist",
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "m4a",
		"-o", filepath.Join(f.workDir, id+".%(ext)s"),
		identifier,
	}
	if err := f.run(ctx, args...); err != nil {
		return "", services.Wrap(services.ErrIngestion, "resolving", "yt-dlp", identifier, err)
	}
	if !fileutil.FileExists(dest) {
		return "", services.Wrap(services.ErrIngestion, "resolving", "yt-dlp", "expected output missing: "+dest, nil)
	}
	return dest, nil
}

func (f *YTDLPFetcher) run(ctx context.Context, args ...string) error {
	if f.commandRunner != nil {
		return f.commandRunner(ctx, f.binary, args...)
	}
	cmd := exec.CommandContext(ctx, f.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", f.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}
