package job

import (
	"fmt"

	"github.com/programme-lv/pal/internal/sandbox"
)

type Kind string

const (
	Success               Kind = "success"
	Accepted              Kind = "accepted"
	WrongAnswer           Kind = "wrong_answer"
	TimeLimitExceeded     Kind = "time_limit_exceeded"
	RuntimeError          Kind = "runtime_error"
	OtherError            Kind = "other_error"
	ReferenceProgramError Kind = "reference_program_error"
)

// Short codes used in summaries and to select failures for inspection.
var kindCodes = map[Kind]string{
	Success:               "",
	Accepted:              ".",
	WrongAnswer:           "WA",
	TimeLimitExceeded:     "TLE",
	RuntimeError:          "REG",
	OtherError:            "OE",
	ReferenceProgramError: "STDERR",
}

// Result is the classification of one job. Msg is only set for OtherError,
// Reference only for ReferenceProgramError.
type Result struct {
	Kind      Kind             `json:"kind"`
	Msg       string           `json:"msg,omitempty"`
	Reference *sandbox.Failure `json:"reference,omitempty"`
}

// Passed reports whether the result counts as a pass.
func (r Result) Passed() bool {
	return r.Kind == Accepted || r.Kind == Success
}

// Code is the short kind code, without any payload.
func (r Result) Code() string {
	return kindCodes[r.Kind]
}

func (r Result) String() string {
	switch r.Kind {
	case OtherError:
		return fmt.Sprintf("OE(%s)", r.Msg)
	case ReferenceProgramError:
		if r.Reference == nil {
			return "STDERR()"
		}
		return fmt.Sprintf("STDERR(%s)", r.Reference.Error())
	}
	return r.Code()
}

// KindForCode maps a short code such as "WA" back to its kind.
func KindForCode(code string) (Kind, bool) {
	for k, c := range kindCodes {
		if c == code {
			return k, true
		}
	}
	return "", false
}

// FromCandidateFailure classifies a failed run of the program under test.
func FromCandidateFailure(f *sandbox.Failure) Result {
	switch f.Kind {
	case sandbox.TimedOut:
		return Result{Kind: TimeLimitExceeded}
	case sandbox.InvalidExit:
		return Result{Kind: RuntimeError}
	default:
		return Result{Kind: OtherError, Msg: f.Msg}
	}
}

// FromReferenceFailure classifies a failed run of the reference program.
func FromReferenceFailure(f *sandbox.Failure) Result {
	return Result{Kind: ReferenceProgramError, Reference: f}
}

// Panicked classifies a job whose evaluation panicked.
func Panicked(v any) Result {
	return Result{Kind: OtherError, Msg: fmt.Sprintf("panic: %v", v)}
}
