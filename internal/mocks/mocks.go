// File: internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/randtype/internal/humanoid"
)

// -- Typer Mock --

// MockTyper mocks humanoid.Typer.
type MockTyper struct {
	mock.Mock
}

func (m *MockTyper) Type(ctx context.Context, s string) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTyper) Print(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockTyper) PrintLine(ctx context.Context, line string) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

// -- Executor Mock --

// MockExecutor mocks humanoid.Executor.
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Sleep(ctx context.Context, d time.Duration) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

var (
	_ humanoid.Typer    = (*MockTyper)(nil)
	_ humanoid.Executor = (*MockExecutor)(nil)
)
