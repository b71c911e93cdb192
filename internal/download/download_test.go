package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/meshwup/meshwup/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(
		WithInitialInterval(time.Millisecond),
		WithRetries(3),
		WithLogger(logging.Discard()),
	)
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("triples"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "nt_data", "mesh.nt.gz")
	res, err := testClient().Fetch(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, int64(7), res.Bytes)
	assert.False(t, res.Skipped)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "triples", string(data))
	assert.NoFileExists(t, dest+".part")
}

func TestFetch_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "mesh.nt.gz")
	_, err := testClient().Fetch(context.Background(), srv.URL, dest)

	assert.ErrorIs(t, err, ErrHTTPStatus)
	assert.Equal(t, int32(1), calls.Load())
	assert.NoFileExists(t, dest)
}

func TestFetch_SkipsExisting(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "mesh.nt.gz")
	require.NoError(t, os.WriteFile(dest, []byte("cached"), 0644))

	res, err := testClient().Fetch(context.Background(), "http://127.0.0.1:0/unused", dest)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, int64(6), res.Bytes)
}

func TestGunzip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mesh.nt.gz")
	f, err := os.Create(src)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("<a> <b> <c> .\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	dest := filepath.Join(dir, "mesh.nt")
	res, err := Gunzip(src, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(14), res.Bytes)

	res, err = Gunzip(src, dest)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
}
