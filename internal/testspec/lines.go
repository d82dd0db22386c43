package testspec

import "strings"

// lineReader walks a document line by line. Lines end at "\n" with an
// optional "\r" before it; a final line break does not start another line.
type lineReader struct {
	lines []string
	pos   int
}

func newLineReader(doc string) *lineReader {
	if doc == "" {
		return &lineReader{}
	}
	lines := strings.Split(doc, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &lineReader{lines: lines}
}

func (r *lineReader) next() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	line := r.lines[r.pos]
	r.pos++
	return line, true
}

// blocks consumes the rest of the document and returns every block that was
// closed by a separator line. Each line keeps its own "\n".
func (r *lineReader) blocks(separator string) []string {
	var res []string
	var cur strings.Builder
	for {
		line, ok := r.next()
		if !ok {
			return res
		}
		if line == separator {
			res = append(res, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
}
