package textproc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/randtype/internal/config"
)

func TestSplit(t *testing.T) {
	const line = "helloSTOPworld\n"

	tests := []struct {
		name string
		line string
		dump config.DumpConfig
		want []Segment
	}{
		{
			name: "left keeps the marker in the typed part",
			line: line,
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionLeft},
			want: []Segment{{Text: "hello", Mode: Instant}, {Text: "STOPworld\n", Mode: Typed}},
		},
		{
			name: "left with kill drops the marker",
			line: line,
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionLeft, Kill: true},
			want: []Segment{{Text: "hello", Mode: Instant}, {Text: "world\n", Mode: Typed}},
		},
		{
			name: "right types the head and dumps the rest",
			line: line,
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionRight},
			want: []Segment{{Text: "hello", Mode: Typed}, {Text: "STOPworld\n", Mode: Instant}},
		},
		{
			name: "right with kill drops the marker",
			line: line,
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionRight, Kill: true},
			want: []Segment{{Text: "hello", Mode: Typed}, {Text: "world\n", Mode: Instant}},
		},
		{
			name: "left without the marker types the whole line",
			line: "plain\n",
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionLeft},
			want: []Segment{{Text: "plain\n", Mode: Typed}},
		},
		{
			name: "right without the marker types the whole line",
			line: "plain\n",
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionRight},
			want: []Segment{{Text: "plain\n", Mode: Typed}},
		},
		{
			name: "only the first marker splits",
			line: "aSTOPbSTOPc",
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionRight, Kill: true},
			want: []Segment{{Text: "a", Mode: Typed}, {Text: "bSTOPc", Mode: Instant}},
		},
		{
			name: "marker at the start leaves no instant prefix",
			line: "STOPgo",
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionLeft},
			want: []Segment{{Text: "STOPgo", Mode: Typed}},
		},
		{
			name: "marker at the end with kill leaves nothing to type",
			line: "goSTOP",
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionLeft, Kill: true},
			want: []Segment{{Text: "go", Mode: Instant}},
		},
		{
			name: "disabled marker types the whole line",
			line: line,
			dump: config.DumpConfig{},
			want: []Segment{{Text: line, Mode: Typed}},
		},
		{
			name: "empty line plans nothing",
			line: "",
			dump: config.DumpConfig{Marker: "STOP", Direction: config.DirectionLeft},
			want: []Segment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.line, tt.dump)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_SegmentsCoverTheLine(t *testing.T) {
	// Without kill, the segments are a partition of the line.
	for _, dir := range []config.Direction{config.DirectionLeft, config.DirectionRight} {
		var joined string
		for _, s := range Split("one#two#three", config.DumpConfig{Marker: "#", Direction: dir}) {
			joined += s.Text
		}
		assert.Equal(t, "one#two#three", joined, string(dir))
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "typed", Typed.String())
	assert.Equal(t, "instant", Instant.String())
}
