package internal

import "sync"

// LogProgress reports progress counters through the leveled logger. Purely
// observational; safe for concurrent Advance calls.
type LogProgress struct {
	logger *Logger
	mu     sync.Mutex
	totals map[string]int
	counts map[string]int
}

// NewLogProgress creates a progress sink writing to logger.
func NewLogProgress(logger *Logger) *LogProgress {
	return &LogProgress{
		logger: logger,
		totals: make(map[string]int),
		counts: make(map[string]int),
	}
}

func (p *LogProgress) Begin(task string, total int) {
	p.mu.Lock()
	p.totals[task] = total
	p.counts[task] = 0
	p.mu.Unlock()
	p.logger.Debug("progress: %s 0/%d", task, total)
}

func (p *LogProgress) Advance(task string, n int) {
	p.mu.Lock()
	p.counts[task] += n
	count, total := p.counts[task], p.totals[task]
	p.mu.Unlock()
	p.logger.Debug("progress: %s %d/%d", task, count, total)
}
