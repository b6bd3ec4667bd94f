// Package ingest resolves remote media identifiers to local files.
//
// YouTube URLs go through a yt-dlp wrapper that downloads the best audio
// stream as m4a; other HTTP(S) URLs are fetched directly. Both paths
// namespace the downloaded file by the asset ID extracted from the
// identifier. Failures carry services.ErrIngestion.
package ingest
