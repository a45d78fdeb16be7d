package edgar

import (
	"bytes"
	"context"
	"io"

	"github.com/rotisserie/eris"
)

// fakeFetcher serves canned responses keyed by URL, standing in for the
// HTTP fetcher in tests.
type fakeFetcher struct {
	responses map[string][]byte
	exists    map[string]bool
	requested []string
}

func (f *fakeFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	f.requested = append(f.requested, url)
	body, ok := f.responses[url]
	if !ok {
		return nil, eris.Errorf("fake: no response for %s", url)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (f *fakeFetcher) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck
	return io.ReadAll(body)
}

func (f *fakeFetcher) Exists(ctx context.Context, url string) bool {
	f.requested = append(f.requested, url)
	return f.exists[url]
}
