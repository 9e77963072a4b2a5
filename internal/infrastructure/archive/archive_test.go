package archive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriquiz/backend/internal/domain"
)

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "doc-1", []byte("%PDF-1.3")))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(got))

	_, err = store.Get(ctx, "doc-2")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestLocalStore_RejectsUnsafeIDs(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"", "../secret", "a/b", "doc.pdf", "é"} {
		assert.ErrorIs(t, store.Put(ctx, id, []byte("x")), domain.ErrInvalidRequest, id)
		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, id)
	}
}

// fakeS3 serves path-style PUT and GET object requests from memory
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3Store(t *testing.T, presignTTL time.Duration) (*S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},
	})
	return NewS3StoreFromClient(client, "plans-bucket", presignTTL), fake
}

func TestS3Store_PutAndGet(t *testing.T) {
	store, fake := newTestS3Store(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "doc-1", []byte("%PDF-1.3 body")))
	assert.Contains(t, fake.objects, "/plans-bucket/plans/doc-1.pdf")

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 body", string(got))
}

func TestS3Store_Missing(t *testing.T) {
	store, _ := newTestS3Store(t, 0)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestS3Store_InvalidID(t *testing.T) {
	store, _ := newTestS3Store(t, 0)

	err := store.Put(context.Background(), "../x", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestS3Store_URLDisabled(t *testing.T) {
	store, _ := newTestS3Store(t, 0)

	url, err := store.URL(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "plans/abc.pdf", objectKey("abc"))
	assert.True(t, strings.HasPrefix(objectKey("x"), s3Prefix))
}
