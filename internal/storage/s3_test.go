package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/OFFIS-RIT/plotline/pkg/common"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = data
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := b.objects[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T, endpoint, public string) *ResultStore {
	t.Helper()
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ENDPOINT", endpoint)
	t.Setenv("AWS_ACCESS_KEY", "test")
	t.Setenv("AWS_SECRET_KEY", "test")

	client, err := NewS3Client(context.Background())
	if err != nil {
		t.Fatalf("NewS3Client() error = %v", err)
	}
	return NewResultStore(NewResultStoreParams{Client: client, Bucket: "plotline", PublicEndpoint: public})
}

func TestResultStoreRoundTrip(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	defer srv.Close()

	store := newTestStore(t, srv.URL, "")
	result := &common.Result{
		ID:             "abc",
		Characters:     []string{"มาลี", "สมชาย"},
		Relations:      []common.RelationPair{{Source: "มาลี", Target: "สมชาย", Weight: 3}},
		RelationStatus: common.RelationStatusOK,
	}

	key, err := store.PutResult(context.Background(), result)
	if err != nil {
		t.Fatalf("PutResult() error = %v", err)
	}
	if key != "results/abc.json" {
		t.Errorf("key = %q", key)
	}
	if _, ok := bucket.objects["/plotline/results/abc.json"]; !ok {
		t.Fatalf("object not written, have %v", bucket.objects)
	}

	got, err := store.GetResult(context.Background(), key)
	if err != nil {
		t.Fatalf("GetResult() error = %v", err)
	}
	if !reflect.DeepEqual(got.Relations, result.Relations) || !reflect.DeepEqual(got.Characters, result.Characters) {
		t.Errorf("GetResult() = %+v", got)
	}
}

func TestDownloadLink(t *testing.T) {
	store := newTestStore(t, "http://minio:9000", "https://files.example.com/storage")

	link, err := store.DownloadLink(context.Background(), ResultKey("abc"))
	if err != nil {
		t.Fatalf("DownloadLink() error = %v", err)
	}
	if !strings.HasPrefix(link, "https://files.example.com/storage/plotline/results/abc.json?") {
		t.Errorf("link = %q", link)
	}
	if !strings.Contains(link, "X-Amz-Signature=") {
		t.Errorf("link is not presigned: %q", link)
	}

	bad := NewResultStore(NewResultStoreParams{Client: store.client, Bucket: "plotline", PublicEndpoint: "not a url"})
	if _, err := bad.DownloadLink(context.Background(), "k"); err == nil {
		t.Error("expected error for invalid public endpoint")
	}
}
