// Filename: internal/humanoid/interface.go
package humanoid

import (
	"context"
	"time"
)

// Typer is the contract the stream driver uses to emit text.
type Typer interface {
	// Type emits s byte by byte with simulated delays and mistakes.
	Type(ctx context.Context, s string) error
	// Print emits s at once with no delay.
	Print(s string) error
	// PrintLine waits one general delay and then emits the whole line.
	PrintLine(ctx context.Context, line string) error
}

// Executor performs the blocking waits of the simulation. Tests swap it for a
// recorder so no real time passes.
type Executor interface {
	// Sleep pauses for d, returning early with the context error on cancellation.
	Sleep(ctx context.Context, d time.Duration) error
}
