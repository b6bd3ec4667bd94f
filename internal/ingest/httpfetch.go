package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/asset"
	"scribe/internal/fileutil"
	"scribe/internal/services"
)

// HTTPFetcher downloads media directly over HTTP(S).
type HTTPFetcher struct {
	client  *http.Client
	workDir string
}

// NewHTTPFetcher returns a fetcher that writes downloads into workDir.
func NewHTTPFetcher(workDir string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		workDir: workDir,
	}
}

// Fetch streams the URL body into {assetID}{ext} under the working directory.
// The download lands in a uniquely named partial file first so concurrent
// fetches of the same identifier never interleave.
func (f *HTTPFetcher) Fetch(ctx context.Context, identifier string) (string, error) {
	id, err := asset.ExtractID(identifier)
	if err != nil {
		return "", err
	}
	if err := fileutil.EnsureDir(f.workDir); err != nil {
		return "", services.Wrap(services.ErrIngestion, "resolving", "ensure work dir", f.workDir, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, identifier, nil)
	if err != nil {
		return "", services.Wrap(services.ErrIngestion, "resolving", "build request", identifier, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrIngestion, "resolving", "download", identifier, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrIngestion, "resolving", "download",
			fmt.Sprintf("%s: status %d", identifier, resp.StatusCode), nil)
	}

	dest := filepath.Join(f.workDir, id+extensionOf(identifier))
	partial := dest + ".part-" + uuid.NewString()

	file, err := os.Create(partial)
	if err != nil {
		return "", services.Wrap(services.ErrIngestion, "resolving", "create file", partial, err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		_, _ = fileutil.RemoveIfExists(partial)
		return "", services.Wrap(services.ErrIngestion, "resolving", "write file", partial, err)
	}
	if err := file.Close(); err != nil {
		_, _ = fileutil.RemoveIfExists(partial)
		return "", services.Wrap(services.ErrIngestion, "resolving", "close file", partial, err)
	}
	if err := os.Rename(partial, dest); err != nil {
		_, _ = fileutil.RemoveIfExists(partial)
		return "", services.Wrap(services.ErrIngestion, "resolving", "finalize file", dest, err)
	}
	return dest, nil
}

func extensionOf(identifier string) string {
	parsed, err := url.Parse(strings.TrimSpace(identifier))
	if err != nil {
		return ".bin"
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return ".bin"
}
