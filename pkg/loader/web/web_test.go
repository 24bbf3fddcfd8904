package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/plotline/pkg/loader"

	"golang.org/x/text/encoding/charmap"
)

const article = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>เรื่องสั้น</title></head>
<body>
<nav><a href="/">หน้าแรก</a></nav>
<article>
<h1>เรื่องสั้น</h1>
<p>มาลีเดินไปตลาดในตอนเช้า เธอพบสมชายที่ร้านขายดอกไม้ และทั้งสองก็ยิ้มให้กันอย่างอบอุ่น ก่อนจะเดินไปด้วยกันตามถนนเล็ก ๆ ที่เงียบสงบ</p>
<p>ตอนเย็นสมชายกลับบ้านพร้อมกับความสุข เขาเล่าเรื่องมาลีให้แม่ฟัง แม่หัวเราะและบอกว่าเขาควรพาเธอมาทานข้าวที่บ้านในวันอาทิตย์หน้า</p>
<p>วันอาทิตย์มาถึง มาลีมาพร้อมขนมหวานที่ทำเอง ทุกคนนั่งคุยกันจนดึก และสมชายก็รู้ว่าเขารักเธอมากกว่าที่เคยคิด</p>
</article>
<footer>ลิขสิทธิ์</footer>
</body></html>`

func TestWebTextLoaderHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(article))
	}))
	defer srv.Close()

	l := NewWebTextLoader(NewWebTextLoaderParams{Client: srv.Client()})
	file := loader.NewTextFile(loader.NewTextFileParams{ID: "story", Path: srv.URL + "/story", Loader: l}, loader.SourceTypeWeb)

	text, err := file.GetText(context.Background())
	if err != nil {
		t.Fatalf("GetText() error = %v", err)
	}
	if !strings.Contains(text, "มาลีเดินไปตลาด") {
		t.Errorf("article text missing, got %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Errorf("markup left in text: %q", text)
	}
}

func TestWebTextLoaderPlainLegacyCharset(t *testing.T) {
	encoded, err := charmap.Windows874.NewEncoder().String("สมชายรักมาลี")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=windows-874")
		_, _ = w.Write([]byte(encoded))
	}))
	defer srv.Close()

	l := NewWebTextLoader(NewWebTextLoaderParams{Client: srv.Client()})
	got, err := l.GetFileBytes(context.Background(), loader.TextFile{ID: "plain", Path: srv.URL})
	if err != nil {
		t.Fatalf("GetFileBytes() error = %v", err)
	}
	if string(got) != "สมชายรักมาลี" {
		t.Errorf("GetFileBytes() = %q", got)
	}
}

func TestWebTextLoaderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	l := NewWebTextLoader(NewWebTextLoaderParams{Client: srv.Client()})
	if _, err := l.GetFileBytes(context.Background(), loader.TextFile{ID: "gone", Path: srv.URL}); err == nil {
		t.Error("expected error for non-200 status")
	}

	_, err := l.GetFileBytes(context.Background(), loader.TextFile{ID: "ftp", Path: "ftp://example.com/story.txt"})
	if !errors.Is(err, loader.ErrUnsupportedSource) {
		t.Errorf("ftp url error = %v, want ErrUnsupportedSource", err)
	}
}
