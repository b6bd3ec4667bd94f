package segment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/asset"
)

type fakeCutter struct {
	calls []cutCall
	fail  bool
}

type cutCall struct {
	source     string
	dest       string
	startMs    int64
	durationMs int64
}

func (f *fakeCutter) Cut(ctx context.Context, source, dest string, startMs, durationMs int64) error {
	f.calls = append(f.calls, cutCall{source, dest, startMs, durationMs})
	if f.fail {
		return fmt.Errorf("ffmpeg exploded")
	}
	return os.WriteFile(dest, []byte("audio"), 0o644)
}

func TestSplitWritesNamedSegments(t *testing.T) {
	dir := t.TempDir()
	cutter := &fakeCutter{}
	media := asset.MediaAsset{ID: "vid123", SourcePath: "/media/vid123.m4a", DurationMs: 100}

	segments, err := New(cutter).Split(context.Background(), media, 3, dir)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments", len(segments))
	}

	for i, seg := range segments {
		wantPath := filepath.Join(dir, fmt.Sprintf("vid123_%d.m4a", i+1))
		if seg.Path != wantPath {
			t.Errorf("segment %d path = %q, want %q", i+1, seg.Path, wantPath)
		}
		if seg.AssetID != "vid123" || seg.Index != i+1 {
			t.Errorf("segment %d identity = (%q, %d)", i+1, seg.AssetID, seg.Index)
		}
		if _, err := os.Stat(seg.Path); err != nil {
			t.Errorf("segment file missing: %v", err)
		}
	}

	if len(cutter.calls) != 3 {
		t.Fatalf("cutter called %d times", len(cutter.calls))
	}
	if cutter.calls[2].startMs != 66 || cutter.calls[2].durationMs != 34 {
		t.Errorf("final cut = start %d dur %d, want 66/34", cutter.calls[2].startMs, cutter.calls[2].durationMs)
	}
}

func TestSplitWritesEmptyFilesForZeroLengthRanges(t *testing.T) {
	dir := t.TempDir()
	cutter := &fakeCutter{}
	media := asset.MediaAsset{ID: "tiny", SourcePath: "/media/tiny.m4a", DurationMs: 2}

	segments, err := New(cutter).Split(context.Background(), media, 4, dir)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("got %d segments", len(segments))
	}
	// 2ms / 4 = 0ms per segment; only the last range has content.
	if len(cutter.calls) != 1 {
		t.Fatalf("cutter called %d times, want 1", len(cutter.calls))
	}
	for _, seg := range segments[:3] {
		info, err := os.Stat(seg.Path)
		if err != nil {
			t.Fatalf("stat %s: %v", seg.Path, err)
		}
		if info.Size() != 0 {
			t.Errorf("segment %d should be empty", seg.Index)
		}
	}
}

func TestSplitPropagatesCutterFailure(t *testing.T) {
	dir := t.TempDir()
	media := asset.MediaAsset{ID: "vid123", SourcePath: "/media/vid123.m4a", DurationMs: 100}
	if _, err := New(&fakeCutter{fail: true}).Split(context.Background(), media, 2, dir); err == nil {
		t.Fatal("expected error from failing cutter")
	}
}

func TestFFmpegCutterArgs(t *testing.T) {
	var gotName string
	var gotArgs []string
	cutter := NewFFmpegCutter("ffmpeg-test")
	cutter.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := cutter.Cut(context.Background(), "in.m4a", "out.m4a", 66, 34); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if gotName != "ffmpeg-test" {
		t.Errorf("binary = %q", gotName)
	}
	joined := strings.Join(gotArgs, " ")
	for _, fragment := range []string{"-ss 0.066", "-t 0.034", "in.m4a", "out.m4a"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("args %q missing %q", joined, fragment)
		}
	}
}

func TestFFmpegCutterRejectsZeroDuration(t *testing.T) {
	cutter := NewFFmpegCutter("")
	if err := cutter.Cut(context.Background(), "in.m4a", "out.m4a", 0, 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
}
