package testkit

import "sync"

// CountingProgress records progress updates for assertions.
type CountingProgress struct {
	mu     sync.Mutex
	totals map[string]int
	counts map[string]int
}

// NewCountingProgress creates an empty progress recorder.
func NewCountingProgress() *CountingProgress {
	return &CountingProgress{
		totals: make(map[string]int),
		counts: make(map[string]int),
	}
}

func (p *CountingProgress) Begin(task string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totals[task] = total
	p.counts[task] = 0
}

func (p *CountingProgress) Advance(task string, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[task] += n
}

// Count returns the advanced step count for a task.
func (p *CountingProgress) Count(task string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[task]
}

// Total returns the announced total for a task.
func (p *CountingProgress) Total(task string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totals[task]
}
