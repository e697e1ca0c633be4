// Package remote fetches a store's data, index, and type-marker files
// from a running instance exposing them over HTTP, so a new node can
// bootstrap from a copy of another's state instead of starting empty.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const localPrefix = ".rdb"

var extensions = [3]string{"type", "index", "data"}

// localNames maps the remote path suffix to the on-disk sidecar name the
// index and storage packages expect to find under dir. The type marker
// lives at .rdb.index.type, not .rdb.type, since it names the index's
// backing, not the store itself.
var localNames = map[string]string{
	"type":  localPrefix + ".index.type",
	"index": localPrefix + ".index",
	"data":  localPrefix + ".data",
}

// CloneOption configures a Clone call.
type CloneOption func(*cloneConfig)

type cloneConfig struct {
	compression CompressionType
	client      *http.Client
}

// WithCompression decompresses each fetched file in place using the
// given algorithm. The default, CompressionNone, copies bytes as-is.
func WithCompression(t CompressionType) CloneOption {
	return func(c *cloneConfig) { c.compression = t }
}

// WithHTTPClient overrides the http.Client used to fetch remote files.
func WithHTTPClient(client *http.Client) CloneOption {
	return func(c *cloneConfig) {
		if client != nil {
			c.client = client
		}
	}
}

// Clone fetches {address}/type, {address}/index, and {address}/data and
// writes them into dir as .rdb.index.type, .rdb.index, and .rdb.data, the
// names the index and storage packages expect to find on open. dir
// must already exist.
func Clone(ctx context.Context, address, dir string, opts ...CloneOption) error {
	cfg := cloneConfig{compression: CompressionNone, client: http.DefaultClient}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, ext := range extensions {
		remoteURL := fmt.Sprintf("%s/%s", address, ext)
		localPath := filepath.Join(dir, localNames[ext])

		if err := fetchOne(ctx, cfg, remoteURL, localPath); err != nil {
			return fmt.Errorf("failed to clone %s from %s: %w", ext, address, err)
		}
	}

	return nil
}

func fetchOne(ctx context.Context, cfg cloneConfig, remoteURL, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return err
	}

	resp, err := cfg.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return err
	}

	return decompressFile(file, cfg.compression)
}
