package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/services"
)

func TestYTDLPFetchBuildsExpectedCommand(t *testing.T) {
	dir := t.TempDir()
	fetcher := NewYTDLPFetcher("yt-dlp-test", dir)

	var gotName string
	var gotArgs []string
	fetcher.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		// Simulate the download landing where the output template points.
		return os.WriteFile(filepath.Join(dir, "dQw4w9WgXcQ.m4a"), []byte("audio"), 0o644)
	})

	dest, err := fetcher.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if dest != filepath.Join(dir, "dQw4w9WgXcQ.m4a") {
		t.Errorf("dest = %q", dest)
	}
	if gotName != "yt-dlp-test" {
		t.Errorf("binary = %q", gotName)
	}
	joined := strings.Join(gotArgs, " ")
	for _, fragment := range []string{"--audio-format m4a", "-f bestaudio/best", "https://youtu.be/dQw4w9WgXcQ"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("args %q missing %q", joined, fragment)
		}
	}
}

func TestYTDLPFetchSkipsExistingDownload(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "dQw4w9WgXcQ.m4a")
	if err := os.WriteFile(existing, []byte("cached"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fetcher := NewYTDLPFetcher("", dir)
	fetcher.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		t.Error("yt-dlp should not run when the download exists")
		return nil
	})

	dest, err := fetcher.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if dest != existing {
		t.Errorf("dest = %q", dest)
	}
}

func TestYTDLPFetchFailureIsIngestionError(t *testing.T) {
	fetcher := NewYTDLPFetcher("", t.TempDir())
	fetcher.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("video unavailable")
	})

	_, err := fetcher.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrIngestion) {
		t.Fatalf("error = %v, want ErrIngestion", err)
	}
}

func TestYTDLPFetchRejectsBadIdentifierBeforeRunning(t *testing.T) {
	fetcher := NewYTDLPFetcher("", t.TempDir())
	fetcher.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		t.Error("yt-dlp must not run for invalid identifiers")
		return nil
	})

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/feed/subscriptions")
	if !errors.Is(err, services.ErrInvalidIdentifier) {
		t.Fatalf("error = %v, want ErrInvalidIdentifier", err)
	}
}
