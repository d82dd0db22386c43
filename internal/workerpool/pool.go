package workerpool

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Task is a unit of work. Outcomes are reported by the task itself.
type Task func()

// Pool runs queued tasks on a fixed number of workers.
type Pool struct {
	tasks    chan Task
	quit     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
	stopOnce sync.Once
	workers  int
	executed *xsync.Counter
	panicked *xsync.Counter
}

// New starts workers goroutines. queueSize is the number of tasks that can be
// queued without Execute blocking.
func New(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks:    make(chan Task, queueSize),
		quit:     make(chan struct{}),
		workers:  workers,
		executed: xsync.NewCounter(),
		panicked: xsync.NewCounter(),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i + 1)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			slog.Debug("worker received shutdown signal", "worker", id)
			return
		default:
		}

		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.run(id, task)
		case <-p.quit:
			slog.Debug("worker received shutdown signal", "worker", id)
			return
		}
	}
}

func (p *Pool) run(id int, task Task) {
	defer p.executed.Inc()
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Inc()
			slog.Error("task panicked", "worker", id, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	task()
}

// Execute queues task. It returns false when the pool was shut down or
// closed and the task will never run.
func (p *Pool) Execute(task Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case <-p.quit:
		return false
	default:
	}
	p.tasks <- task
	return true
}

// Shutdown stops workers from taking new tasks. Tasks that are already
// running finish; queued tasks are dropped.
func (p *Pool) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.quit)
	})
}

// Wait closes the queue and returns once every worker has exited. Without a
// prior Shutdown this runs all queued tasks first.
func (p *Pool) Wait() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) Workers() int {
	return p.workers
}

// Executed is the number of tasks that were taken off the queue and run.
func (p *Pool) Executed() int64 {
	return p.executed.Value()
}

// Panicked is the number of tasks that panicked.
func (p *Pool) Panicked() int64 {
	return p.panicked.Value()
}
