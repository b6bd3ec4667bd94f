// Package asset defines the media asset identity used to namespace every
// derived artifact (segments, transcripts, run records).
package asset

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"scribe/internal/services"
)

// MediaAsset describes one resolved media input. The ID is stable for a given
// source and namespaces all files the pipeline derives from it.
type MediaAsset struct {
	ID         string
	SourcePath string
	DurationMs int64
}

// ExtractID derives a stable asset ID from an input identifier before any
// network activity. YouTube URLs yield the video ID; other URLs yield the
// final path element's stem; local paths yield the filename stem up to the
// first underscore. Unparsable input fails with services.ErrInvalidIdentifier.
func ExtractID(input string) (string, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(input, `\`, ""))
	if trimmed == "" {
		return "", services.Wrap(services.ErrInvalidIdentifier, "resolving", "extract id", "empty input", nil)
	}

	if IsRemote(trimmed) {
		return extractRemoteID(trimmed)
	}
	return extractLocalID(trimmed)
}

// IsRemote reports whether input names a remote source rather than a local
// file path.
func IsRemote(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsYouTube reports whether input points at a YouTube host.
func IsYouTube(input string) bool {
	parsed, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	return host == "youtube.com" || host == "youtu.be"
}

func extractRemoteID(input string) (string, error) {
	parsed, err := url.Parse(input)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidIdentifier, "resolving", "parse url", input, err)
	}

	if IsYouTube(input) {
		if id := youtubeVideoID(parsed); id != "" {
			return id, nil
		}
		return "", services.Wrap(services.ErrInvalidIdentifier, "resolving", "extract id", "no video id in "+input, nil)
	}

	base := path.Base(parsed.Path)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		return "", services.Wrap(services.ErrInvalidIdentifier, "resolving", "extract id", "no usable name in "+input, nil)
	}
	return sanitize(stem), nil
}

func youtubeVideoID(parsed *url.URL) string {
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host == "youtu.be" {
		return strings.Trim(parsed.Path, "/")
	}

	if v := parsed.Query().Get("v"); v != "" {
		return v
	}
	// /shorts/<id>, /embed/<id>, /live/<id>
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 2 {
		switch segments[0] {
		case "shorts", "embed", "live":
			return segments[1]
		}
	}
	return ""
}

func extractLocalID(input string) (string, error) {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	// Downloaded files are named "{id}_{title}"; keep only the id part so
	// re-running a local file reuses the original namespace.
	if idx := strings.Index(stem, "_"); idx > 0 {
		stem = stem[:idx]
	}
	if stem == "" || stem == "." {
		return "", services.Wrap(services.ErrInvalidIdentifier, "resolving", "extract id", "no usable name in "+input, nil)
	}
	return sanitize(stem), nil
}

func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, id)
}
