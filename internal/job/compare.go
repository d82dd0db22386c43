package job

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// OutputsEqual compares two program outputs. When both are valid UTF-8 text
// trailing whitespace is ignored; otherwise the raw bytes must match exactly.
func OutputsEqual(expected []byte, actual []byte) bool {
	if utf8.Valid(expected) && utf8.Valid(actual) {
		return bytes.Equal(
			bytes.TrimRightFunc(expected, unicode.IsSpace),
			bytes.TrimRightFunc(actual, unicode.IsSpace),
		)
	}
	return bytes.Equal(expected, actual)
}

// Compare records actual as the job's output and classifies it against the
// job's expected output.
func Compare(j *Job, actual []byte) Result {
	j.ActualOutput = actual
	if OutputsEqual(j.ExpectedOutput, actual) {
		return Result{Kind: Accepted}
	}
	return Result{Kind: WrongAnswer}
}
