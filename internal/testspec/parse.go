// Package testspec turns user-written test documents into jobs.
//
// A literal document starts with a separator line and then alternates input
// and expected output blocks, each closed by the separator. A differential
// document names its sub-format on the first line (simple, glob or random)
// and only carries inputs. A random document starts with the wanted number
// of tests and then carries input templates.
package testspec

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/programme-lv/pal/internal/job"
)

type Mode int

const (
	Literal Mode = iota
	Differential
	Random
)

func (m Mode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Differential:
		return "differential"
	case Random:
		return "random"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type parser struct {
	rng *rand.Rand
}

type Option func(*parser)

// WithRand sets the random source used to instantiate random templates.
func WithRand(rng *rand.Rand) Option {
	return func(p *parser) { p.rng = rng }
}

// Parse reads doc according to mode. Job ids are assigned from 0 in document
// order. A block that is not closed by a separator is ignored.
func Parse(doc string, mode Mode, opts ...Option) ([]job.Job, error) {
	p := &parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	r := newLineReader(doc)
	switch mode {
	case Literal:
		return parseLiteral(r)
	case Differential:
		return p.parseDifferential(r)
	case Random:
		return p.parseRandom(r)
	}
	return nil, fmt.Errorf("unsupported parse mode %v", mode)
}

func parseLiteral(r *lineReader) ([]job.Job, error) {
	separator, ok := r.next()
	if !ok {
		return nil, unexpectedEOF("separator")
	}

	var jobs []job.Job
	var input, output []byte
	collectingOutput := false
	for {
		line, ok := r.next()
		if !ok {
			return jobs, nil
		}
		if line != separator {
			if collectingOutput {
				output = append(append(output, line...), '\n')
			} else {
				input = append(append(input, line...), '\n')
			}
			continue
		}
		if !collectingOutput {
			collectingOutput = true
			continue
		}
		collectingOutput = false
		jobs = append(jobs, job.Job{
			ID:             len(jobs),
			Input:          orEmpty(input),
			ExpectedOutput: orEmpty(output),
		})
		input, output = nil, nil
	}
}

func (p *parser) parseDifferential(r *lineReader) ([]job.Job, error) {
	kind, ok := r.next()
	if !ok {
		return nil, unexpectedEOF("document kind")
	}

	switch kind {
	case "simple":
		blocks, err := readBlocks(r)
		if err != nil {
			return nil, err
		}
		return inputsToJobs(blocks), nil
	case "glob":
		blocks, err := readBlocks(r)
		if err != nil {
			return nil, err
		}
		var inputs []string
		for _, b := range blocks {
			expanded, err := ExpandGlob(b)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, expanded...)
		}
		return inputsToJobs(inputs), nil
	case "random":
		return p.parseRandom(r)
	}
	return nil, &ParseError{Kind: ErrUnknownKind, Msg: kind}
}

func (p *parser) parseRandom(r *lineReader) ([]job.Job, error) {
	countLine, ok := r.next()
	if !ok {
		return nil, unexpectedEOF("tests num")
	}
	count, err := strconv.ParseUint(countLine, 10, 64)
	if err != nil {
		return nil, formatError("cannot parse tests num (%s): %v", countLine, err)
	}

	templates, err := readBlocks(r)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, formatError("no input templates to generate %d tests from", count)
	}

	perTemplate := int(count / uint64(len(templates)))
	inputs := make([]string, 0, perTemplate*len(templates))
	for _, t := range templates {
		for range perTemplate {
			in, err := ExpandRandom(t, p.rng)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, in)
		}
	}
	return inputsToJobs(inputs), nil
}

func readBlocks(r *lineReader) ([]string, error) {
	separator, ok := r.next()
	if !ok {
		return nil, unexpectedEOF("separator")
	}
	return r.blocks(separator), nil
}

func inputsToJobs(inputs []string) []job.Job {
	jobs := make([]job.Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = job.Job{ID: i, Input: []byte(in), ExpectedOutput: []byte{}}
	}
	return jobs
}

func orEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
