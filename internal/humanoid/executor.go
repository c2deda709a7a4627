// Filename: internal/humanoid/executor.go
package humanoid

import (
	"context"
	"time"
)

// TimerExecutor is the production Executor. It blocks on a runtime timer.
type TimerExecutor struct{}

// NewTimerExecutor creates the production executor.
func NewTimerExecutor() *TimerExecutor {
	return &TimerExecutor{}
}

func (e *TimerExecutor) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
