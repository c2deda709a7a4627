package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/hpcloud/tail"
	"go.uber.org/zap"

	"github.com/xkilldash9x/randtype/internal/config"
)

// follow keeps typing lines appended to path after offset until ctx is done.
func (d *Driver) follow(ctx context.Context, path string, offset int64) error {
	d.logger.Info("Following source", zap.String("path", path), zap.Int64("offset", offset))

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Location:  &tail.SeekInfo{Offset: offset, Whence: io.SeekStart},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer func() {
		// The tailer blocks on unread lines and Stop waits for it.
		go func() {
			for range t.Lines {
			}
		}()
		t.Stop()
		t.Cleanup()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				d.logger.Warn("Error reading followed source", zap.String("path", path), zap.Error(line.Err))
				continue
			}
			for _, chunk := range chunkLine(line.Text+"\n", config.LineMax-1) {
				if err := d.processLine(ctx, chunk); err != nil {
					return err
				}
			}
		}
	}
}

// chunkLine splits s into pieces of at most limit bytes, the way LineReader
// delivers over-long lines.
func chunkLine(s string, limit int) []string {
	if len(s) <= limit {
		return []string{s}
	}
	chunks := make([]string, 0, len(s)/limit+1)
	for len(s) > limit {
		chunks = append(chunks, s[:limit])
		s = s[limit:]
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
