// ABOUTME: Tests for export upload stores.
// ABOUTME: S3 runs against a fake HTTP transport; fs uses a temp dir.
package backup

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport accepts every PUT and remembers it.
type recordingTransport struct {
	mu    sync.Mutex
	puts  map[string][]byte
	types map[string]string
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{puts: map[string][]byte{}, types: map[string]string{}}
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if req.Method != http.MethodPut {
		return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	rt.puts[req.URL.Path] = body
	rt.types[req.URL.Path] = req.Header.Get("Content-Type")
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {"\"etag\""}}}, nil
}

func TestS3Put(t *testing.T) {
	rt := newRecordingTransport()
	store, err := NewS3(context.Background(), Options{
		Bucket:    "fishbackups",
		Endpoint:  "https://mock.s3.local",
		PathStyle: true,
	},
		config.WithHTTPClient(&http.Client{Transport: rt}),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)

	loc, err := store.Put(context.Background(), "betta/guest/export.json", []byte(`{"version":"1.0"}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, "s3://fishbackups/betta/guest/export.json", loc)

	body, ok := rt.puts["/fishbackups/betta/guest/export.json"]
	require.True(t, ok, "expected a path-style PUT, got %v", rt.puts)
	assert.Contains(t, string(body), `{"version":"1.0"}`)
	assert.Equal(t, "application/json", rt.types["/fishbackups/betta/guest/export.json"])
}

func TestS3RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), Options{})
	assert.Error(t, err)
}

func TestFSPut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFS(dir)
	require.NoError(t, err)

	loc, err := store.Put(context.Background(), "betta/guest/export.csv", []byte("date\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "betta", "guest", "export.csv"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "date\n", string(data))
}

func TestFSRejectsTraversal(t *testing.T) {
	store, err := NewFS(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "../escape", "a/../../b"} {
		_, err := store.Put(context.Background(), key, []byte("x"), "")
		assert.Error(t, err, "key %q", key)
	}
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Driver: "fs", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FSStore{}, s)

	_, err = Open(ctx, Options{Driver: "fs"})
	assert.Error(t, err, "fs driver needs a dir")

	_, err = Open(ctx, Options{Driver: "ftp"})
	assert.Error(t, err)
}

func TestKeyAndContentType(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "betta/guest/export-20260311T093000Z.json", Key("guest", "json", now))

	assert.Equal(t, "application/json", ContentType("json"))
	assert.Equal(t, "text/csv", ContentType("csv"))
	assert.Equal(t, "text/markdown", ContentType("markdown"))
	assert.Equal(t, "application/octet-stream", ContentType("pdf"))
}
