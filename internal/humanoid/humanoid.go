// -- internal/humanoid/humanoid.go --
package humanoid

import (
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/randtype/internal/config"
)

// Stats counts what a Typist has emitted.
type Stats struct {
	// Typed counts bytes dispatched through Type; Instant and Delayed are subsets of it.
	Typed    int           `json:"typed"`
	Instant  int           `json:"instant"`
	Delayed  int           `json:"delayed"`
	Printed  int           `json:"printed"`
	Mistakes int           `json:"mistakes"`
	Slept    time.Duration `json:"slept_ns"`
}

// Typist emits text to a writer the way a person at a keyboard would.
type Typist struct {
	cfg    config.TypingConfig
	out    io.Writer
	exec   Executor
	logger *zap.Logger

	// limiter caps emitted characters per second; nil when disabled.
	limiter *rate.Limiter

	mu    sync.Mutex
	rng   *rand.Rand
	stats Stats
}

// Option customizes a Typist.
type Option func(*Typist)

// WithRand replaces the process seeded random source.
func WithRand(rng *rand.Rand) Option {
	return func(t *Typist) { t.rng = rng }
}

// WithExecutor replaces the timer based executor.
func WithExecutor(exec Executor) Option {
	return func(t *Typist) { t.exec = exec }
}

// New creates a Typist writing to out.
func New(cfg config.TypingConfig, out io.Writer, logger *zap.Logger, opts ...Option) *Typist {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Typist{
		cfg:    cfg,
		out:    out,
		exec:   NewTimerExecutor(),
		logger: logger.Named("typist"),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		// Seeded once per process; reproducibility across runs is not a goal.
		seed := int64(os.Getpid())<<32 ^ time.Now().UnixNano()
		t.rng = rand.New(rand.NewSource(seed))
	}
	if cfg.MaxCPS > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(cfg.MaxCPS), 1)
	}
	return t
}

// Stats returns a snapshot of the counters.
func (t *Typist) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

func (t *Typist) delay(tc config.TimingConfig) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Delay(t.rng, tc.MaxMs, tc.Multiplier)
}

func (t *Typist) count(fn func(*Stats)) {
	t.mu.Lock()
	fn(&t.stats)
	t.mu.Unlock()
}
