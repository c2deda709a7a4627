// File: cmd/randtype/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/xkilldash9x/randtype/cmd"
	"github.com/xkilldash9x/randtype/internal/observability"
)

// Allows mocking os.Exit in tests.
var osExit = os.Exit

func main() {
	defer handlePanic()
	osExit(cmd.Execute(context.Background()))
}

// handlePanic flushes the logs and reports a crash on stderr.
func handlePanic() {
	if r := recover(); r != nil {
		observability.Sync()
		fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", r, debug.Stack())
		osExit(1)
	}
}
