// Package stream reads input sources line by line and feeds every line
// through substitution, dump handling and the typist.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/xkilldash9x/randtype/internal/config"
	"github.com/xkilldash9x/randtype/internal/humanoid"
	"github.com/xkilldash9x/randtype/internal/textproc"
)

// StdinSource is the operand that selects standard input.
const StdinSource = "-"

var (
	// ErrOpen marks a source that could not be opened.
	ErrOpen = errors.New("cannot open source")
	// ErrRead marks a source that failed part way through.
	ErrRead = errors.New("cannot read source")
)

// Stats counts the work done by a Driver.
type Stats struct {
	Sources int `json:"sources"`
	Failed  int `json:"failed"`
	Lines   int `json:"lines"`
}

// Driver feeds sources to a Typer.
type Driver struct {
	cfg    *config.Config
	typist humanoid.Typer
	stdin  io.Reader
	logger *zap.Logger

	mu    sync.Mutex
	stats Stats
}

// DriverOption customizes a Driver.
type DriverOption func(*Driver)

// WithStdin replaces os.Stdin as the reader behind StdinSource.
func WithStdin(r io.Reader) DriverOption {
	return func(d *Driver) { d.stdin = r }
}

// NewDriver creates a Driver. cfg must not change while the driver runs.
func NewDriver(cfg *config.Config, typist humanoid.Typer, logger *zap.Logger, opts ...DriverOption) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Driver{
		cfg:    cfg,
		typist: typist,
		stdin:  os.Stdin,
		logger: logger.Named("stream"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Stats returns the counters collected so far.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Driver) count(f func(*Stats)) {
	d.mu.Lock()
	f(&d.stats)
	d.mu.Unlock()
}

// Run processes sources in order, or standard input when there are none.
// Sources that cannot be opened are logged and skipped; their exit codes are
// ORed into status. A cancelled context stops the run and is returned as err.
// In follow mode only the last source is followed.
func (d *Driver) Run(ctx context.Context, sources []string) (status int, err error) {
	if len(sources) == 0 {
		sources = []string{StdinSource}
	}
	for i, source := range sources {
		err := d.process(ctx, source, d.cfg.Input.Follow && i == len(sources)-1)
		switch {
		case err == nil:
		case errors.Is(err, ErrOpen), errors.Is(err, ErrRead):
			d.count(func(s *Stats) { s.Failed++ })
			d.logger.Error("Skipping source", zap.String("source", source), zap.Error(err))
			status |= ExitCode(err)
		default:
			return status, err
		}
	}
	return status, nil
}

// Process types a single source to completion. It never follows the source.
func (d *Driver) Process(ctx context.Context, source string) error {
	return d.process(ctx, source, false)
}

func (d *Driver) process(ctx context.Context, source string, follow bool) error {
	rc, enc, path, err := d.open(source)
	if err != nil {
		return err
	}
	defer rc.Close()

	d.count(func(s *Stats) { s.Sources++ })
	d.logger.Debug("Processing source", zap.String("source", source), zap.String("encoding", string(enc)))

	var consumed int64
	lr := NewLineReader(rc, config.LineMax-1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRead, source, err)
		}
		consumed += int64(len(line))

		if err := d.processLine(ctx, line); err != nil {
			return err
		}
	}

	if follow {
		if source == StdinSource || enc != EncodingIdentity {
			d.logger.Warn("Follow mode needs a plain file; not following", zap.String("source", source))
			return nil
		}
		return d.follow(ctx, path, consumed)
	}
	return nil
}

// processLine runs one line through substitution and then either line mode
// or the dump plan.
func (d *Driver) processLine(ctx context.Context, line string) error {
	d.count(func(s *Stats) { s.Lines++ })
	line = textproc.ApplyAll(line, d.cfg.Replace, config.LineMax-1)

	if d.cfg.Typing.LineMode {
		return d.typist.PrintLine(ctx, line)
	}

	for _, seg := range textproc.Split(line, d.cfg.Dump) {
		var err error
		if seg.Mode == textproc.Instant {
			err = d.typist.Print(seg.Text)
		} else {
			err = d.typist.Type(ctx, seg.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) open(source string) (io.ReadCloser, Encoding, string, error) {
	var src io.ReadCloser
	path := source

	if source == StdinSource {
		src = io.NopCloser(d.stdin)
	} else {
		expanded, err := homedir.Expand(source)
		if err != nil {
			return nil, "", "", fmt.Errorf("%w: %s: %w", ErrOpen, source, err)
		}
		path = expanded
		f, err := os.Open(path)
		if err != nil {
			return nil, "", "", fmt.Errorf("%w: %w", ErrOpen, err)
		}
		src = f
	}

	// A terminal is never sniffed; peeking for magic bytes would hold back a
	// lone newline.
	if !d.cfg.Input.Decompress || (source == StdinSource && isTerminal(d.stdin)) {
		return src, EncodingIdentity, path, nil
	}
	rc, enc, err := newDecoder(source, src)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %s: %w", ErrOpen, source, err)
	}
	return rc, enc, path, nil
}

// isTerminal reports whether r is a character device such as a tty.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// ExitCode maps a source error to a process exit code: the errno when the
// error carries one, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return 1
}
