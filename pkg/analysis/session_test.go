package analysis

import (
	"context"
	"testing"

	"github.com/OFFIS-RIT/plotline/pkg/ner"
)

func TestSessionLifecycle(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if s.State() != SessionIdle {
		t.Fatalf("State() = %q, want idle", s.State())
	}
	if _, ok := s.Result(); ok {
		t.Fatal("idle session reported a result")
	}

	a := newAnalyzer(ner.NewLoadedModelCache(stubModel{}), 0)
	first, err := s.Submit(context.Background(), a, "รัก", nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if s.State() != SessionAnalyzed {
		t.Fatalf("State() = %q, want analyzed", s.State())
	}

	second, err := s.Submit(context.Background(), a, "ตาย ตาย", nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	got, ok := s.Result()
	if !ok || got != second || got == first {
		t.Fatalf("Result() did not return the latest submission")
	}

	snap := s.Snapshot()
	if snap.ID != s.ID || snap.State != SessionAnalyzed || snap.Result != second {
		t.Errorf("Snapshot() = %+v", snap)
	}
}

func TestSessionFailedSubmitKeepsState(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	a := newAnalyzer(ner.NewLoadedModelCache(stubModel{}), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Submit(ctx, a, "รัก", nil); err == nil {
		t.Fatal("expected error from cancelled submit")
	}
	if s.State() != SessionIdle {
		t.Errorf("State() = %q, want idle after failed submit", s.State())
	}
}
