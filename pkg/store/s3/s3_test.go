package s3

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reifyd/scriptify/pkg/store"
)

// mockS3Server simulates the S3 API for testing.
type mockS3Server struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func newMockS3Server() *mockS3Server {
	return &mockS3Server{
		objects: make(map[string][]byte),
	}
}

func (m *mockS3Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Path-style addressing: /bucket/key
	path := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.SplitN(path, "/", 2)

	if len(parts) < 1 || parts[0] == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	bucket := parts[0]
	key := ""
	if len(parts) > 1 {
		key = parts[1]
	}

	if key == "" && r.URL.Query().Get("list-type") == "2" {
		m.handleListObjects(w, r, bucket)
		return
	}

	fullKey := bucket + "/" + key

	switch r.Method {
	case http.MethodGet:
		m.handleGet(w, fullKey)
	case http.MethodPut:
		m.handlePut(w, r, fullKey)
	case http.MethodDelete:
		m.handleDelete(w, fullKey)
	case http.MethodHead:
		m.handleHead(w, fullKey)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (m *mockS3Server) handleGet(w http.ResponseWriter, key string) {
	data, ok := m.objects[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code></Error>`))
		return
	}
	_, _ = w.Write(data)
}

func (m *mockS3Server) handlePut(w http.ResponseWriter, r *http.Request, key string) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// Unseekable payloads arrive aws-chunked with trailing checksums.
	if strings.Contains(r.Header.Get("Content-Encoding"), "aws-chunked") {
		data = decodeAWSChunked(data)
	}
	m.objects[key] = data
	w.WriteHeader(http.StatusOK)
}

func (m *mockS3Server) handleDelete(w http.ResponseWriter, key string) {
	delete(m.objects, key)
	w.WriteHeader(http.StatusNoContent)
}

func (m *mockS3Server) handleHead(w http.ResponseWriter, key string) {
	data, ok := m.objects[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
}

func (m *mockS3Server) handleListObjects(w http.ResponseWriter, r *http.Request, bucket string) {
	prefix := r.URL.Query().Get("prefix")

	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, bucket+"/") {
			objectKey := strings.TrimPrefix(key, bucket+"/")
			if prefix == "" || strings.HasPrefix(objectKey, prefix) {
				keys = append(keys, objectKey)
			}
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)

	response := `<?xml version="1.0" encoding="UTF-8"?><ListBucketResult><Name>` + bucket + `</Name>`
	for _, key := range keys {
		response += `<Contents><Key>` + key + `</Key></Contents>`
	}
	response += `</ListBucketResult>`
	_, _ = w.Write([]byte(response))
}

func decodeAWSChunked(data []byte) []byte {
	var out bytes.Buffer
	reader := bufio.NewReader(bytes.NewReader(data))
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		sizeField := strings.TrimSpace(line)
		if i := strings.IndexByte(sizeField, ';'); i >= 0 {
			sizeField = sizeField[:i]
		}
		size, err := strconv.ParseInt(sizeField, 16, 64)
		if err != nil || size == 0 {
			break
		}
		if _, err := io.CopyN(&out, reader, size); err != nil {
			break
		}
		_, _ = reader.Discard(2) // trailing CRLF
	}
	return out.Bytes()
}

func newTestBackend(t *testing.T) store.Backend {
	t.Helper()

	mock := newMockS3Server()
	server := httptest.NewServer(mock)
	t.Cleanup(server.Close)

	b, err := NewBackend(map[string]string{
		"bucket":           "test-bucket",
		"endpoint":         server.URL,
		"access_key":       "test-key",
		"secret_key":       "test-secret",
		"force_path_style": "true",
	})
	require.NoError(t, err)
	return b
}

func TestNewBackend_MissingBucket(t *testing.T) {
	for name, cfg := range map[string]map[string]string{
		"absent": {"region": "us-east-1"},
		"empty":  {"bucket": ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewBackend(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bucket")
		})
	}
}

func TestBackend_Type(t *testing.T) {
	assert.Equal(t, "s3", newTestBackend(t).Type())
}

func TestBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	require.NoError(t, b.Write(ctx, "iris/script.whizzml", strings.NewReader("(define x 1)")))

	r, err := b.Read(ctx, "iris/script.whizzml")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "(define x 1)", string(data))
}

func TestBackend_ReadMissing(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.Read(context.Background(), "missing.whizzml")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBackend_Exists(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	exists, err := b.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, b.Write(ctx, "a.json", strings.NewReader("{}")))

	exists, err = b.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBackend_Delete(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	require.NoError(t, b.Write(ctx, "a.json", strings.NewReader("{}")))
	require.NoError(t, b.Delete(ctx, "a.json"))
	require.NoError(t, b.Delete(ctx, "a.json"))

	exists, err := b.Exists(ctx, "a.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBackend_List(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	for _, p := range []string{"iris/script.whizzml", "iris/descriptor.json", "other/manifest.json"} {
		require.NoError(t, b.Write(ctx, p, strings.NewReader("x")))
	}

	paths, err := b.List(ctx, "iris/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"iris/script.whizzml", "iris/descriptor.json"}, paths)
}

func TestBackend_KeyPrefix(t *testing.T) {
	cases := []struct {
		name     string
		prefix   string
		path     string
		expected string
	}{
		{"no prefix", "", "manifest.json", "manifest.json"},
		{"with prefix", "scripts/prod", "manifest.json", "scripts/prod/manifest.json"},
		{"nested path", "scriptify", "iris/script.whizzml", "scriptify/iris/script.whizzml"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			b := &Backend{prefix: tt.prefix}
			assert.Equal(t, tt.expected, b.fullPath(tt.path))
			assert.Equal(t, tt.path, b.relPath(tt.expected))
		})
	}
}
