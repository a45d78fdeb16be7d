// Package fetcher downloads remote documents with SEC-friendly rate
// limiting and retries.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadBytes fetches the URL and returns the full body.
	DownloadBytes(ctx context.Context, url string) ([]byte, error)

	// Exists reports whether the URL responds with a successful status.
	// Uses HEAD, falling back to GET for endpoints that reject HEAD.
	Exists(ctx context.Context, url string) bool
}
