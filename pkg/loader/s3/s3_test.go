package s3

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/OFFIS-RIT/plotline/pkg/loader"
)

func TestS3TextLoader(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodGet || r.URL.Path != "/stories/novels/one.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("มาลียิ้ม"))
	}))
	defer srv.Close()

	ctx := context.Background()
	l, err := NewS3TextLoader(ctx, NewS3TextLoaderParams{
		Bucket:       "stories",
		Endpoint:     srv.URL,
		Region:       "us-east-1",
		AccessKey:    "test",
		SecretKey:    "test",
		UsePathStyle: true,
	})
	if err != nil {
		t.Fatalf("NewS3TextLoader() error = %v", err)
	}

	file := loader.NewTextFile(loader.NewTextFileParams{ID: "one", Path: "novels/one.txt", Loader: l}, loader.SourceTypeS3)
	for range 2 {
		text, err := file.GetText(ctx)
		if err != nil {
			t.Fatalf("GetText() error = %v", err)
		}
		if text != "มาลียิ้ม" {
			t.Fatalf("GetText() = %q", text)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (second read cached)", got)
	}
}
