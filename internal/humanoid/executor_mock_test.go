package humanoid_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/randtype/internal/config"
	"github.com/xkilldash9x/randtype/internal/humanoid"
	"github.com/xkilldash9x/randtype/internal/mocks"
)

func TestTypist_SleepErrorStopsTyping(t *testing.T) {
	exec := new(mocks.MockExecutor)
	interrupted := errors.New("interrupted")
	exec.On("Sleep", mock.Anything, mock.Anything).Return(nil).Once()
	exec.On("Sleep", mock.Anything, mock.Anything).Return(interrupted).Once()

	var out bytes.Buffer
	cfg := config.TypingConfig{General: config.TimingConfig{MaxMs: 1, Multiplier: 1}}
	typist := humanoid.New(cfg, &out, zap.NewNop(), humanoid.WithExecutor(exec))

	err := typist.Type(context.Background(), "abcd")
	require.ErrorIs(t, err, interrupted)
	assert.Equal(t, "ab", out.String())
	assert.Equal(t, 1, typist.Stats().Typed)
	exec.AssertExpectations(t)
}
