package dispatch

import (
	"time"

	"github.com/programme-lv/pal/internal/sandbox"
)

func WithRunner(run func(program string, workDir string, timeout time.Duration, input []byte) ([]byte, *sandbox.Failure)) Option {
	return func(d *Dispatcher) { d.run = run }
}
