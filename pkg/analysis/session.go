package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/common"
)

// SessionState is the lifecycle stage of a Session.
type SessionState string

const (
	SessionIdle     SessionState = "idle"
	SessionAnalyzed SessionState = "analyzed"
)

// ErrSessionBusy is returned when a submission arrives while another one
// is still being analyzed.
var ErrSessionBusy = errors.New("session is analyzing another submission")

// Session tracks one interactive analysis. It starts Idle and moves to
// Analyzed when a submission completes; later submissions replace the
// result. A failed submission leaves the previous state untouched.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	busy      bool
	state     SessionState
	result    *common.Result
	updatedAt time.Time
}

// NewSession creates an Idle session with a fresh ID.
func NewSession() (*Session, error) {
	id, err := util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		state:     SessionIdle,
		updatedAt: now,
	}, nil
}

// Submit analyzes text with a and stores the result.
func (s *Session) Submit(ctx context.Context, a *Analyzer, text string, names []string) (*common.Result, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrSessionBusy
	}
	s.busy = true
	s.mu.Unlock()

	result, err := a.Analyze(ctx, text, names)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		return nil, err
	}
	s.state = SessionAnalyzed
	s.result = result
	s.updatedAt = time.Now()
	return result, nil
}

// State returns the current lifecycle stage.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the latest result, or false while Idle.
func (s *Session) Result() (*common.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.state == SessionAnalyzed
}

// SessionSnapshot is the serializable view of a Session.
type SessionSnapshot struct {
	ID        string         `json:"id"`
	State     SessionState   `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Result    *common.Result `json:"result,omitempty"`
}

// Snapshot returns a consistent copy of the session for encoding.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		ID:        s.ID,
		State:     s.state,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
		Result:    s.result,
	}
}
