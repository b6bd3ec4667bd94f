package segment

import (
	"fmt"
	"path/filepath"

	"scribe/internal/services"
)

// Range is one planned slice of the asset timeline, half-open [StartMs, EndMs).
type Range struct {
	Index   int
	StartMs int64
	EndMs   int64
}

// Segment is one written audio slice.
type Segment struct {
	AssetID string
	Index   int
	Path    string
	StartMs int64
	EndMs   int64
}

// Plan partitions [0, durationMs) into n contiguous ranges. Each range is
// durationMs/n long (integer division) except the last, which extends to
// durationMs and so absorbs the remainder. Ranges may be empty when
// durationMs < n; that is legal and the caller must tolerate zero-length
// segments.
func Plan(durationMs int64, n int) ([]Range, error) {
	if n <= 0 {
		return nil, services.Wrap(services.ErrSegmentation, "segmenting", "plan", fmt.Sprintf("split count %d must be positive", n), nil)
	}
	if durationMs < 0 {
		return nil, services.Wrap(services.ErrSegmentation, "segmenting", "plan", fmt.Sprintf("duration %dms is negative", durationMs), nil)
	}

	length := durationMs / int64(n)
	ranges := make([]Range, 0, n)
	for i := 1; i <= n; i++ {
		r := Range{
			Index:   i,
			StartMs: int64(i-1) * length,
			EndMs:   int64(i) * length,
		}
		if i == n {
			r.EndMs = durationMs
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// Path returns the deterministic segment file path for (assetID, index).
func Path(outDir, assetID string, index int) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_%d.m4a", assetID, index))
}
