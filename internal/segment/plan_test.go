package segment

import (
	"errors"
	"path/filepath"
	"testing"

	"scribe/internal/services"
)

func TestPlanCoversDurationContiguously(t *testing.T) {
	tests := []struct {
		durationMs int64
		n          int
	}{
		{100, 3},
		{0, 1},
		{1, 5},
		{212091, 5},
		{60000, 1},
		{99, 100},
	}
	for _, tc := range tests {
		ranges, err := Plan(tc.durationMs, tc.n)
		if err != nil {
			t.Fatalf("Plan(%d, %d): %v", tc.durationMs, tc.n, err)
		}
		if len(ranges) != tc.n {
			t.Fatalf("Plan(%d, %d) produced %d ranges", tc.durationMs, tc.n, len(ranges))
		}
		var cursor int64
		for i, r := range ranges {
			if r.Index != i+1 {
				t.Errorf("range %d has index %d", i, r.Index)
			}
			if r.StartMs != cursor {
				t.Errorf("Plan(%d, %d) range %d starts at %d, want %d", tc.durationMs, tc.n, r.Index, r.StartMs, cursor)
			}
			if r.EndMs < r.StartMs {
				t.Errorf("range %d ends before it starts", r.Index)
			}
			cursor = r.EndMs
		}
		if cursor != tc.durationMs {
			t.Errorf("Plan(%d, %d) covers up to %d", tc.durationMs, tc.n, cursor)
		}
	}
}

func TestPlanAbsorbsRemainderInFinalSegment(t *testing.T) {
	ranges, err := Plan(100, 3)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []Range{
		{Index: 1, StartMs: 0, EndMs: 33},
		{Index: 2, StartMs: 33, EndMs: 66},
		{Index: 3, StartMs: 66, EndMs: 100},
	}
	for i, r := range ranges {
		if r != want[i] {
			t.Errorf("range %d = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestPlanRejectsInvalidInput(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := Plan(1000, n); !errors.Is(err, services.ErrSegmentation) {
			t.Errorf("Plan(1000, %d) error = %v, want ErrSegmentation", n, err)
		}
	}
	if _, err := Plan(-5, 2); !errors.Is(err, services.ErrSegmentation) {
		t.Errorf("negative duration error = %v, want ErrSegmentation", err)
	}
}

func TestPathIsDeterministic(t *testing.T) {
	got := Path("/tmp/work", "dQw4w9WgXcQ", 3)
	want := filepath.Join("/tmp/work", "dQw4w9WgXcQ_3.m4a")
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}
