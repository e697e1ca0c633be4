package remote_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/rdb/internal/index"
	"github.com/iamNilotpal/rdb/pkg/logger"
	"github.com/iamNilotpal/rdb/pkg/options"
	"github.com/iamNilotpal/rdb/pkg/remote"
)

func Test_Clone_FetchesAllThreeFiles_Uncompressed(t *testing.T) {
	t.Parallel()

	contents := map[string]string{
		"/type":  "HashMap",
		"/index": "index-bytes",
		"/data":  "data-bytes",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := contents[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	dir := t.TempDir()
	require.NoError(t, remote.Clone(context.Background(), server.URL, dir))

	typeBytes, err := os.ReadFile(filepath.Join(dir, ".rdb.index.type"))
	require.NoError(t, err)
	assert.Equal(t, "HashMap", string(typeBytes))

	indexBytes, err := os.ReadFile(filepath.Join(dir, ".rdb.index"))
	require.NoError(t, err)
	assert.Equal(t, "index-bytes", string(indexBytes))

	dataBytes, err := os.ReadFile(filepath.Join(dir, ".rdb.data"))
	require.NoError(t, err)
	assert.Equal(t, "data-bytes", string(dataBytes))
}

func Test_Clone_ThenOpen_IndexFindsTheClonedTypeMarker(t *testing.T) {
	t.Parallel()

	contents := map[string]string{
		"/type":  "HashMap",
		"/index": "",
		"/data":  "",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := contents[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	dir := t.TempDir()
	require.NoError(t, remote.Clone(context.Background(), server.URL, dir))

	idx, err := index.Open(&index.Config{
		DataDir:   dir,
		IndexType: options.IndexTypeAuto,
		Logger:    logger.Nop(),
	})
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, 0, idx.Len())
}

func Test_Clone_WithZstdCompression_Decompresses(t *testing.T) {
	t.Parallel()

	encoder, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := encoder.EncodeAll([]byte("plain bytes"), nil)
	require.NoError(t, encoder.Close())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(compressed)
	}))
	defer server.Close()

	dir := t.TempDir()
	require.NoError(t, remote.Clone(context.Background(), server.URL, dir, remote.WithCompression(remote.CompressionZstd)))

	dataBytes, err := os.ReadFile(filepath.Join(dir, ".rdb.data"))
	require.NoError(t, err)
	assert.Equal(t, "plain bytes", string(dataBytes))
}

func Test_Clone_WithGzipCompression_Decompresses(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	_, err := writer.Write([]byte("gzipped bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	dir := t.TempDir()
	require.NoError(t, remote.Clone(context.Background(), server.URL, dir, remote.WithCompression(remote.CompressionGzip)))

	dataBytes, err := os.ReadFile(filepath.Join(dir, ".rdb.data"))
	require.NoError(t, err)
	assert.Equal(t, "gzipped bytes", string(dataBytes))
}

func Test_Clone_NonOKStatus_ReturnsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	err := remote.Clone(context.Background(), server.URL, dir)
	assert.Error(t, err)
}
