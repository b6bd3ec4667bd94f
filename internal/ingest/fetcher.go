package ingest

import (
	"context"

	"scribe/internal/asset"
	"scribe/internal/services"
)

// Fetcher resolves one remote identifier to a local media file path.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) (string, error)
}

// Dispatcher routes identifiers to the fetcher that understands them.
type Dispatcher struct {
	YouTube Fetcher
	HTTP    Fetcher
}

// Fetch delegates to the YouTube or plain HTTP fetcher. Anything that is not
// a URL reaches this point only when it names a local file that does not
// exist, which is an ingestion failure.
func (d *Dispatcher) Fetch(ctx context.Context, identifier string) (string, error) {
	switch {
	case asset.IsYouTube(identifier):
		return d.YouTube.Fetch(ctx, identifier)
	case asset.IsRemote(identifier):
		return d.HTTP.Fetch(ctx, identifier)
	default:
		return "", services.Wrap(services.ErrIngestion, "resolving", "fetch", "no such local file: "+identifier, nil)
	}
}
