package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTiming parses the compact "ms,mult" form used by the -t and -c flags.
// Both fields must be plain digits; fields past the second are ignored and
// empty fields are skipped.
func ParseTiming(s string) (TimingConfig, error) {
	fields := splitNonEmpty(s, ',')
	if len(fields) < 2 {
		return TimingConfig{}, fmt.Errorf("%w: timing %q must be ms,mult", ErrUsage, s)
	}
	if !isDigits(fields[0]) || !isDigits(fields[1]) {
		return TimingConfig{}, fmt.Errorf("%w: timing %q must contain only digits", ErrUsage, s)
	}

	ms, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return TimingConfig{}, fmt.Errorf("%w: timing ms %q: %v", ErrUsage, fields[0], err)
	}
	mult, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return TimingConfig{}, fmt.Errorf("%w: timing multiplier %q: %v", ErrUsage, fields[1], err)
	}
	return TimingConfig{MaxMs: ms, Multiplier: uint(mult)}, nil
}

// ParseDump parses the -d flag: a direction byte (',' for left, '.' for
// right) followed by the marker text.
func ParseDump(s string) (DumpConfig, error) {
	if len(s) < 2 {
		return DumpConfig{}, fmt.Errorf("%w: dump string %q is too short", ErrUsage, s)
	}

	var dir Direction
	switch s[0] {
	case ',':
		dir = DirectionLeft
	case '.':
		dir = DirectionRight
	default:
		return DumpConfig{}, fmt.Errorf("%w: dump string must begin with ',' or '.'", ErrUsage)
	}
	return DumpConfig{Marker: truncate(s[1:], MaxMarkerLen), Direction: dir}, nil
}

// ParseReplace parses "find,replace[:find,replace...]". Empty pairs are
// skipped. Each pair needs a comma and a non-empty find; the replacement may
// be empty.
func ParseReplace(s string) ([]Substitution, error) {
	var subs []Substitution
	for _, pair := range splitNonEmpty(s, ':') {
		find, repl, ok := strings.Cut(pair, ",")
		if !ok || find == "" {
			return nil, fmt.Errorf("%w: replacement %q must be find,replace", ErrUsage, pair)
		}
		subs = append(subs, Substitution{Find: find, Replace: repl})
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: replacement list %q is empty", ErrUsage, s)
	}
	return subs, nil
}

// ParseCount parses a digits-only unsigned value such as the -m and -q
// arguments. An empty string is zero.
func ParseCount(s string) (uint, error) {
	if !isDigits(s) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrUsage, s)
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrUsage, s, err)
	}
	return uint(n), nil
}

func splitNonEmpty(s string, sep rune) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == sep })
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
