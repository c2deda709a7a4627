package humanoid

// Class is the dispatch class of a character.
type Class int

const (
	// Normal characters are printed and then followed by a general delay.
	Normal Class = iota
	// Instant characters are printed with no delay.
	Instant
	// Delayed characters wait the delayed-class timing before printing.
	Delayed
)

func (c Class) String() string {
	switch c {
	case Instant:
		return "instant"
	case Delayed:
		return "delayed"
	default:
		return "normal"
	}
}

// Classify reports the dispatch class of c. The no-wait set is scanned first,
// so a byte present in both sets is Instant.
func Classify(c byte, noWait, wait string) Class {
	if inSet(noWait, c) {
		return Instant
	}
	if inSet(wait, c) {
		return Delayed
	}
	return Normal
}

// inSet scans set, decoding backslash escapes as it goes, and reports
// whether any decoded member equals c.
func inSet(set string, c byte) bool {
	for i := 0; i < len(set); i++ {
		m := set[i]
		if m == '\\' && i+1 < len(set) {
			i++
			m = unescape(set[i])
		}
		if m == c {
			return true
		}
	}
	return false
}

// unescape maps the byte following a backslash. Unknown escapes stand for
// the byte itself.
func unescape(b byte) byte {
	switch b {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	default:
		return b
	}
}
