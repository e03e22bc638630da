package pipeline

import (
	"context"
	"sync"
)

// Batch dispatches independent pipeline runs across a bounded worker pool.
// Runs share only the orchestrator's read-only configuration, so no
// synchronization beyond the result slots is needed.
type Batch struct {
	orch    *Orchestrator
	workers int
}

func NewBatch(orch *Orchestrator, workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{orch: orch, workers: workers}
}

// Run executes every input and returns per-input outputs and errors in
// input order. A failed run does not stop its siblings.
func (b *Batch) Run(ctx context.Context, inputs []Input) ([]*Output, []error) {
	outputs := make([]*Output, len(inputs))
	errs := make([]error, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outputs[idx], errs[idx] = b.orch.Run(ctx, inputs[idx])
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outputs, errs
}
