package ports

// ProgressPort receives observational progress updates from the placebo
// engine. Implementations must tolerate concurrent Advance calls; counters
// carry no correctness dependency.
type ProgressPort interface {
	// Begin announces a task and its total step count.
	Begin(task string, total int)

	// Advance adds n completed steps to a task.
	Advance(task string, n int)
}

// NopProgress discards all updates.
type NopProgress struct{}

func (NopProgress) Begin(string, int)   {}
func (NopProgress) Advance(string, int) {}
