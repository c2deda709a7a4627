package stream

import (
	"bufio"
	"errors"
	"io"
)

// LineReader reads newline terminated lines of bounded length. A line longer
// than the bound is delivered in several chunks, the last one carrying the
// newline.
type LineReader struct {
	br  *bufio.Reader
	max int
	buf []byte
}

// NewLineReader creates a reader yielding at most limit bytes per line.
func NewLineReader(r io.Reader, limit int) *LineReader {
	if limit < 1 {
		limit = 1
	}
	return &LineReader{
		br:  bufio.NewReader(r),
		max: limit,
		buf: make([]byte, 0, limit),
	}
}

// Next returns the next line or chunk. It returns io.EOF once the input is
// exhausted; a final line without a newline is returned before that.
func (lr *LineReader) Next() (string, error) {
	lr.buf = lr.buf[:0]
	for len(lr.buf) < lr.max {
		c, err := lr.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(lr.buf) > 0 {
				return string(lr.buf), nil
			}
			return "", err
		}
		lr.buf = append(lr.buf, c)
		if c == '\n' {
			break
		}
	}
	return string(lr.buf), nil
}
