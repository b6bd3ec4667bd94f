// Package segment splits one media asset into contiguous audio segments of
// nearly equal duration.
//
// Plan computes the time ranges; Segmenter writes the slices to disk through
// an injected ffmpeg cutter. Segment files are named {assetID}_{index}.m4a so
// any path can be reconstructed from (assetID, index, outDir) alone.
package segment
