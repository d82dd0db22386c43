package testspec

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// bracket is one bracket expression found in a template: either a numeric
// range [lo-hi] or a literal class [chars].
type bracket struct {
	start, end int
	isRange    bool
	lo, hi     uint64
	members    []string
}

func (b bracket) text(s string) string {
	return s[b.start:b.end]
}

// span is the number of substitutions of the bracket. A range with lo > hi
// has none; a range covering all of uint64 saturates at MaxUint64.
func (b bracket) span() uint64 {
	if !b.isRange {
		return uint64(len(b.members))
	}
	if b.lo > b.hi {
		return 0
	}
	if b.hi-b.lo == math.MaxUint64 {
		return math.MaxUint64
	}
	return b.hi - b.lo + 1
}

// values lists every substitution of the bracket, in order. Callers bound
// span first.
func (b bracket) values() []string {
	if !b.isRange {
		return b.members
	}
	n := b.span()
	if n == 0 {
		return nil
	}
	res := make([]string, 0, n)
	for i := b.lo; ; i++ {
		res = append(res, strconv.FormatUint(i, 10))
		if i == b.hi {
			break
		}
	}
	return res
}

// escaped reports whether the byte at i is preceded by a backslash.
func escaped(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

// findBracket returns the first numeric range in s, or when there is none the
// first literal class.
func findBracket(s string) (bracket, bool) {
	if b, ok := findRange(s, 0); ok {
		return b, true
	}
	return findClass(s, 0)
}

func findRange(s string, from int) (bracket, bool) {
	for i := from; i < len(s); i++ {
		if s[i] != '[' || escaped(s, i) {
			continue
		}
		if b, ok := rangeAt(s, i); ok {
			return b, true
		}
	}
	return bracket{}, false
}

// rangeAt matches "[digits-digits]" starting at the '[' at position i.
func rangeAt(s string, i int) (bracket, bool) {
	j := i + 1
	loEnd := skipDigits(s, j)
	if loEnd == j || loEnd >= len(s) || s[loEnd] != '-' {
		return bracket{}, false
	}
	hiStart := loEnd + 1
	hiEnd := skipDigits(s, hiStart)
	if hiEnd == hiStart || hiEnd >= len(s) || s[hiEnd] != ']' {
		return bracket{}, false
	}
	lo, err := strconv.ParseUint(s[j:loEnd], 10, 64)
	if err != nil {
		return bracket{}, false
	}
	hi, err := strconv.ParseUint(s[hiStart:hiEnd], 10, 64)
	if err != nil {
		return bracket{}, false
	}
	return bracket{start: i, end: hiEnd + 1, isRange: true, lo: lo, hi: hi}, true
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func findClass(s string, from int) (bracket, bool) {
	for i := from; i < len(s); i++ {
		if s[i] != '[' || escaped(s, i) {
			continue
		}
		if b, ok := classAt(s, i); ok {
			return b, true
		}
	}
	return bracket{}, false
}

// classAt matches a literal class starting at the '[' at position i. Inside
// the class a backslash makes the next character plain data. A class never
// spans lines, never contains an unescaped '[' and is never empty.
func classAt(s string, i int) (bracket, bool) {
	var members []string
	j := i + 1
	for j < len(s) {
		c := s[j]
		switch c {
		case ']':
			if len(members) == 0 {
				return bracket{}, false
			}
			return bracket{start: i, end: j + 1, members: members}, true
		case '[', '\n':
			return bracket{}, false
		case '\\':
			if j+1 >= len(s) || s[j+1] == '\n' {
				return bracket{}, false
			}
			j++
		}
		r, size := utf8.DecodeRuneInString(s[j:])
		members = append(members, string(r))
		j += size
	}
	return bracket{}, false
}

// replaceUnescaped replaces every occurrence of old in s that is not
// preceded by a backslash.
func replaceUnescaped(s string, old string, repl string) string {
	var sb strings.Builder
	pos := 0
	for {
		k := strings.Index(s[pos:], old)
		if k < 0 {
			break
		}
		at := pos + k
		if escaped(s, at) {
			sb.WriteString(s[pos : at+1])
			pos = at + 1
			continue
		}
		sb.WriteString(s[pos:at])
		sb.WriteString(repl)
		pos = at + len(old)
	}
	sb.WriteString(s[pos:])
	return sb.String()
}
