// -- internal/humanoid/keyboard.go --
package humanoid

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/xkilldash9x/randtype/internal/config"
)

// eraseSequence backs the cursor over one cell, blanks it and backs up again.
const eraseSequence = "\b \b"

// Type simulates typing s. Each byte may first be mistyped, then is emitted
// according to its class: Instant bytes immediately, Delayed bytes after the
// delayed-class wait, Normal bytes followed by the general wait.
func (t *Typist) Type(ctx context.Context, s string) error {
	for n := 0; n < len(s); n++ {
		c := s[n]

		if err := t.maybeMistype(ctx, c, len(s)-n-1, n); err != nil {
			return err
		}

		class := Classify(c, t.cfg.NoWait, t.cfg.Wait)
		switch class {
		case Instant:
			if err := t.sendKey(ctx, c); err != nil {
				return err
			}
		case Delayed:
			if err := t.pause(ctx, t.cfg.Delayed); err != nil {
				return err
			}
			if err := t.sendKey(ctx, c); err != nil {
				return err
			}
		default:
			if err := t.sendKey(ctx, c); err != nil {
				return err
			}
			if err := t.pause(ctx, t.cfg.General); err != nil {
				return err
			}
		}

		t.count(func(st *Stats) {
			st.Typed++
			switch class {
			case Instant:
				st.Instant++
			case Delayed:
				st.Delayed++
			}
		})
	}
	return nil
}

// Print writes s at once.
func (t *Typist) Print(s string) error {
	if s == "" {
		return nil
	}
	if err := t.write(s); err != nil {
		return err
	}
	t.count(func(st *Stats) { st.Printed += len(s) })
	return nil
}

// PrintLine waits one general delay and then writes line verbatim.
func (t *Typist) PrintLine(ctx context.Context, line string) error {
	if err := t.pause(ctx, t.cfg.General); err != nil {
		return err
	}
	return t.Print(line)
}

// maybeMistype makes up to Mistakes draws for c. A draw hits when a random
// value in [1, remaining] equals n, the index of c in the string being typed.
// The first hit types a wrong letter and erases it; non-letters never miss.
func (t *Typist) maybeMistype(ctx context.Context, c byte, remaining, n int) error {
	if !isAlpha(c) {
		return nil
	}
	for p := uint(0); p < t.cfg.Mistakes; p++ {
		t.mu.Lock()
		hit := randInt(t.rng, remaining) == n
		t.mu.Unlock()

		if hit {
			return t.mistype(ctx, c)
		}
	}
	return nil
}

func (t *Typist) mistype(ctx context.Context, c byte) error {
	filler := t.fillerFor(c)
	t.logger.Debug("Injecting mistake", zap.String("intended", string(c)), zap.String("typed", string(filler)))

	// Noticing and correcting the slip takes twice the usual magnitude.
	slow := config.TimingConfig{MaxMs: t.cfg.General.MaxMs * 2, Multiplier: t.cfg.General.Multiplier}

	if err := t.sendKey(ctx, filler); err != nil {
		return err
	}
	if err := t.pause(ctx, slow); err != nil {
		return err
	}
	if err := t.write(eraseSequence); err != nil {
		return err
	}
	if err := t.pause(ctx, slow); err != nil {
		return err
	}
	t.count(func(st *Stats) { st.Mistakes++ })
	return nil
}

// fillerFor picks a random letter from printable ASCII, matching the case of c.
func (t *Typist) fillerFor(c byte) byte {
	t.mu.Lock()
	var b byte
	for {
		b = byte(1 + int(94.0*t.rng.Float64()) + 32)
		if isAlpha(b) {
			break
		}
	}
	t.mu.Unlock()

	switch {
	case isLower(c):
		return toLower(b)
	case isUpper(c):
		return toUpper(b)
	}
	return b
}

// sendKey emits one byte, honouring the optional characters-per-second cap.
func (t *Typist) sendKey(ctx context.Context, c byte) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return t.write(string(c))
}

func (t *Typist) write(s string) error {
	if _, err := io.WriteString(t.out, s); err != nil {
		return fmt.Errorf("humanoid: failed to write output: %w", err)
	}
	return nil
}

func (t *Typist) pause(ctx context.Context, tc config.TimingConfig) error {
	d := t.delay(tc)
	if err := t.exec.Sleep(ctx, d); err != nil {
		return err
	}
	t.count(func(st *Stats) { st.Slept += d })
	return nil
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isAlpha(c byte) bool { return isLower(c) || isUpper(c) }

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

func toUpper(c byte) byte {
	if isLower(c) {
		return c - ('a' - 'A')
	}
	return c
}
