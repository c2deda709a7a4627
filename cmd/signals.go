package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/xkilldash9x/randtype/internal/config"
)

// exitUsage is the status for malformed arguments.
const exitUsage = 255

// SignalError is the cancellation cause recorded when a termination signal
// (or the quit timer, reported as SIGALRM) ends the run.
type SignalError struct {
	Signal syscall.Signal
}

func (e *SignalError) Error() string {
	return "terminated by " + e.Signal.String()
}

// ExitError carries a non-zero exit status out of the command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by the root command to a process status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var sigErr *SignalError
	if errors.As(err, &sigErr) {
		return int(sigErr.Signal)
	}
	if errors.Is(err, config.ErrUsage) {
		return exitUsage
	}
	return 1
}

// notifyContext returns a context cancelled with a *SignalError cause when
// SIGINT or SIGTERM arrives. stop releases the signal handler.
func notifyContext(parent context.Context) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancelCause(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-ch:
			if s, ok := sig.(syscall.Signal); ok {
				cancel(&SignalError{Signal: s})
				return
			}
			cancel(errors.New(sig.String()))
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(ch)
		close(done)
		cancel(context.Canceled)
	}
}

// withQuitTimer ends ctx after seconds with the SIGALRM cause, the way the
// alarm based timer of the classic tool did. Zero disables the timer.
func withQuitTimer(ctx context.Context, seconds uint) (context.Context, context.CancelFunc) {
	if seconds == 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeoutCause(ctx, time.Duration(seconds)*time.Second, &SignalError{Signal: syscall.SIGALRM})
}

// stopCause returns the *SignalError that cancelled ctx, if any.
func stopCause(ctx context.Context) *SignalError {
	var sigErr *SignalError
	if errors.As(context.Cause(ctx), &sigErr) {
		return sigErr
	}
	return nil
}
