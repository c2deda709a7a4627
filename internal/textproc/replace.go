package textproc

import (
	"strings"

	"github.com/xkilldash9x/randtype/internal/config"
)

// ApplyAll applies subs to line in order. Each pair replaces every
// non-overlapping occurrence of Find, scanning left to right, in the output
// of the previous pair. Pairs with an empty Find are skipped. When limit is
// positive the line is truncated to limit bytes after every pair, matching
// the fixed line capacity of the reader.
func ApplyAll(line string, subs []config.Substitution, limit int) string {
	for _, sub := range subs {
		if sub.Find == "" {
			continue
		}
		line = strings.ReplaceAll(line, sub.Find, sub.Replace)
		if limit > 0 && len(line) > limit {
			line = line[:limit]
		}
	}
	return line
}
