package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"scribe/internal/transcribe"
)

// consoleObserver reports pipeline milestones to the terminal. On a TTY the
// per-segment progress renders as a bar; otherwise each milestone prints as a
// plain line so logs stay readable when piped. Bars are tracked per asset so
// concurrent batch items never finish each other's bar.
type consoleObserver struct {
	out io.Writer
	tty bool

	mu   sync.Mutex
	bars map[string]*progressbar.ProgressBar
}

func newConsoleObserver(out io.Writer) *consoleObserver {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &consoleObserver{out: out, tty: tty, bars: make(map[string]*progressbar.ProgressBar)}
}

func (o *consoleObserver) AssetResolved(assetID, sourcePath string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, "Resolved %s (%s)\n", assetID, sourcePath)
}

func (o *consoleObserver) AssetSegmented(assetID string, segments int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.tty {
		fmt.Fprintf(o.out, "Split %s into %d segments\n", assetID, segments)
		return
	}
	o.bars[assetID] = progressbar.NewOptions(segments,
		progressbar.OptionSetWriter(o.out),
		progressbar.OptionSetDescription(fmt.Sprintf("Transcribing %s", assetID)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (o *consoleObserver) SegmentTranscribed(assetID string, index, total int, status transcribe.Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if bar := o.bars[assetID]; bar != nil {
		_ = bar.Add(1)
		if status == transcribe.StatusFailed {
			fmt.Fprintf(o.out, "\nsegment %d/%d of %s failed; placeholder will be used\n", index, total, assetID)
		}
		return
	}
	fmt.Fprintf(o.out, "Segment %d/%d of %s: %s\n", index, total, assetID, status)
}

func (o *consoleObserver) TranscriptAssembled(assetID, outputPath string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finishBar(assetID)
	fmt.Fprintf(o.out, "Transcript written to %s\n", outputPath)
}

func (o *consoleObserver) AssetFinished(assetID string, elapsed time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finishBar(assetID)
	if err != nil {
		fmt.Fprintf(o.out, "Failed %s: %v\n", assetID, err)
	}
}

func (o *consoleObserver) finishBar(assetID string) {
	bar, ok := o.bars[assetID]
	if !ok {
		return
	}
	_ = bar.Finish()
	delete(o.bars, assetID)
}
