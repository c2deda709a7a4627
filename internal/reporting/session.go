package reporting

import (
	"time"

	"github.com/google/uuid"

	"github.com/xkilldash9x/randtype/internal/humanoid"
	"github.com/xkilldash9x/randtype/internal/stream"
)

// Session summarises one run of the tool.
type Session struct {
	ID         uuid.UUID      `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	EndedAt    time.Time      `json:"ended_at"`
	Sources    []string       `json:"sources"`
	Input      stream.Stats   `json:"input"`
	Typing     humanoid.Stats `json:"typing"`
	ExitStatus int            `json:"exit_status"`
	// Reason describes why the run ended early, if it did.
	Reason string `json:"reason,omitempty"`
}

// NewSession starts a session with a fresh id.
func NewSession(sources []string) *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Sources:   sources,
	}
}

// Duration is the wall time of the session, or the time elapsed so far when
// it has not ended.
func (s *Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// CharsPerSecond is the effective rate of typed characters.
func (s *Session) CharsPerSecond() float64 {
	d := s.Duration().Seconds()
	if d <= 0 {
		return 0
	}
	return float64(s.Typing.Typed) / d
}
