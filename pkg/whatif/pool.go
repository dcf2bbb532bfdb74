package whatif

import (
	"sync"

	"github.com/dd0wney/gridcast/pkg/logging"
)

// Pool runs sweep tasks on a fixed set of worker goroutines. A panicking
// task is recovered and logged so one bad scenario cannot abort a whole
// sweep.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
	mu     sync.RWMutex
	closed bool
	logger logging.Logger
}

// NewPool starts the given number of workers. A non-positive count falls
// back to a single worker.
func NewPool(workers int, logger logging.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	p := &Pool{
		tasks:  make(chan func(), workers*2),
		logger: logging.OrNop(logger),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("sweep task panicked", logging.Any("panic", r))
		}
	}()
	task()
}

// Submit queues a task for execution. It reports false once the pool is
// closed; a false return means the task will never run.
func (p *Pool) Submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Close stops accepting tasks and waits for in-flight ones to finish.
// Safe to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
