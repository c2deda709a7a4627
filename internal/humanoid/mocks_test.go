package humanoid

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/randtype/internal/config"
)

// recorder implements both io.Writer and Executor so tests can observe the
// interleaving of output and waits without any real time passing.
type recorder struct {
	mu     sync.Mutex
	out    strings.Builder
	events []string
	sleeps []time.Duration

	// cancelAfter cancels cancelFunc once this many sleeps were recorded.
	cancelAfter int
	cancelFunc  context.CancelFunc
}

func (r *recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.Write(p)
	r.events = append(r.events, fmt.Sprintf("w:%q", p))
	return len(p), nil
}

func (r *recorder) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	r.mu.Lock()
	r.sleeps = append(r.sleeps, d)
	r.events = append(r.events, "sleep")
	n := len(r.sleeps)
	r.mu.Unlock()

	if r.cancelAfter > 0 && n == r.cancelAfter && r.cancelFunc != nil {
		r.cancelFunc()
	}
	return nil
}

func (r *recorder) output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.String()
}

// newTestTypist builds a Typist with a fixed seed and a recorder in place of
// both the writer and the executor. The timing is fixed at one unit of 10µs.
func newTestTypist(t *testing.T, mutate func(*config.TypingConfig)) (*Typist, *recorder) {
	t.Helper()
	cfg := config.TypingConfig{
		General: config.TimingConfig{MaxMs: 1, Multiplier: 10},
		Delayed: config.TimingConfig{MaxMs: 1, Multiplier: 1000},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	rec := &recorder{}
	typist := New(cfg, rec, zap.NewNop(), WithRand(rand.New(rand.NewSource(42))), WithExecutor(rec))
	return typist, rec
}
