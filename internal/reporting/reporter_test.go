// internal/reporting/reporter_test.go
package reporting_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/randtype/internal/humanoid"
	"github.com/xkilldash9x/randtype/internal/reporting"
	"github.com/xkilldash9x/randtype/internal/stream"
)

// bufferCloser is an in-memory WriteCloser.
type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func sampleSession() *reporting.Session {
	s := reporting.NewSession([]string{"a.txt", "-"})
	s.StartedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.EndedAt = s.StartedAt.Add(2 * time.Second)
	s.Input = stream.Stats{Sources: 2, Lines: 3}
	s.Typing = humanoid.Stats{Typed: 40, Instant: 4, Delayed: 2, Printed: 5, Mistakes: 1, Slept: 1500 * time.Millisecond}
	s.ExitStatus = 2
	return s
}

func TestNew_Stderr(t *testing.T) {
	for _, path := range []string{"", "stderr"} {
		r, err := reporting.New("json", path)
		require.NoError(t, err)
		assert.NotNil(t, r)
		assert.NoError(t, r.Close(), "closing stderr is a no-op")
	}
}

func TestNew_File(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "session.json")

	r, err := reporting.New("json", tmpFile)
	require.NoError(t, err)
	require.NoError(t, r.Write(sampleSession()))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exit_status": 2`)
}

func TestNew_UnsupportedFormat(t *testing.T) {
	r, err := reporting.New("sarif", "stderr")
	assert.Error(t, err)
	assert.Nil(t, r)
	assert.Contains(t, err.Error(), "unsupported output format: sarif")

	buf := &bufferCloser{}
	r, err = reporting.NewWithWriter("xml", buf)
	assert.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, buf.closed, "the writer is released on failure")
}

func TestNew_FileCreation(t *testing.T) {
	r, err := reporting.New("json", t.TempDir())
	assert.Error(t, err)
	assert.Nil(t, r)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestJSONReporter(t *testing.T) {
	buf := &bufferCloser{}
	r := reporting.NewJSONReporter(buf)
	s := sampleSession()

	require.NoError(t, r.Write(s))
	require.NoError(t, r.Close())
	assert.True(t, buf.closed)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s.ID.String(), decoded["id"])
	assert.Equal(t, []interface{}{"a.txt", "-"}, decoded["sources"])

	typing := decoded["typing"].(map[string]interface{})
	assert.EqualValues(t, 40, typing["typed"])
	assert.EqualValues(t, 1, typing["mistakes"])

	input := decoded["input"].(map[string]interface{})
	assert.EqualValues(t, 3, input["lines"])
	assert.NotContains(t, decoded, "reason")
}

func TestTextReporter(t *testing.T) {
	buf := &bufferCloser{}
	r := reporting.NewTextReporter(buf)
	s := sampleSession()
	s.Reason = "interrupt"

	require.NoError(t, r.Write(s))
	require.NoError(t, r.Close())

	out := buf.String()
	assert.Contains(t, out, "session    "+s.ID.String())
	assert.Contains(t, out, "duration   2s\n")
	assert.Contains(t, out, "typed      40 (4 instant, 2 delayed)\n")
	assert.Contains(t, out, "mistakes   1\n")
	assert.Contains(t, out, "slept      1.5s\n")
	assert.Contains(t, out, "rate       20.0 chars/s\n")
	assert.Contains(t, out, "stopped    interrupt\n")
	assert.Contains(t, out, "exit       2\n")
}

func TestSession_Duration(t *testing.T) {
	s := reporting.NewSession(nil)
	assert.NotEqual(t, s.ID, reporting.NewSession(nil).ID)
	assert.GreaterOrEqual(t, s.Duration(), time.Duration(0))

	s.EndedAt = s.StartedAt
	assert.Zero(t, s.CharsPerSecond())
}
