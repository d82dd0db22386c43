package testspec

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// MaxGlobInputs bounds the number of inputs a single glob template may expand
// to.
const MaxGlobInputs = 1 << 22

// ExpandGlob expands every bracket expression of template into all of its
// combinations. Each pass resolves the first bracket of every string; passes
// repeat until no string changes. A template that would produce more than
// MaxGlobInputs inputs is a format error.
func ExpandGlob(template string) ([]string, error) {
	expanded := []string{template}
	for {
		changed := false
		next := make([]string, 0, len(expanded))
		for _, s := range expanded {
			b, ok := findBracket(s)
			if !ok {
				next = append(next, s)
				continue
			}
			changed = true
			text := b.text(s)
			if n := b.span(); n > MaxGlobInputs || uint64(len(next))+n > MaxGlobInputs {
				return nil, formatError("range %s too large", text)
			}
			for _, v := range b.values() {
				next = append(next, replaceUnescaped(s, text, v))
			}
		}
		expanded = next
		if !changed {
			return expanded, nil
		}
	}
}

// ExpandRandom resolves every bracket of template to a single random value:
// ranges first, then literal classes, each occurrence on its own.
func ExpandRandom(template string, rng *rand.Rand) (string, error) {
	s, err := resolveEach(template, findRange, func(b bracket) (string, error) {
		if b.lo > b.hi {
			return "", formatError("empty range %s", b.text(template))
		}
		return strconv.FormatUint(randBetween(rng, b.lo, b.hi), 10), nil
	})
	if err != nil {
		return "", err
	}
	return resolveEach(s, findClass, func(b bracket) (string, error) {
		return b.members[rng.IntN(len(b.members))], nil
	})
}

func resolveEach(
	s string,
	find func(string, int) (bracket, bool),
	pick func(bracket) (string, error),
) (string, error) {
	var sb strings.Builder
	pos := 0
	for {
		b, ok := find(s, pos)
		if !ok {
			break
		}
		v, err := pick(b)
		if err != nil {
			return "", err
		}
		sb.WriteString(s[pos:b.start])
		sb.WriteString(v)
		pos = b.end
	}
	sb.WriteString(s[pos:])
	return sb.String(), nil
}

func randBetween(rng *rand.Rand, lo, hi uint64) uint64 {
	span := hi - lo
	if span == math.MaxUint64 {
		return rng.Uint64()
	}
	return lo + rng.Uint64N(span+1)
}
