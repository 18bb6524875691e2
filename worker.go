package qsim

import (
	"fmt"
	"time"
)

// shotWorker runs its batch of trials sequentially on its own random stream.
type shotWorker struct {
	id    int
	pool  *shotPool
	shots int
	src   Source
}

/*
run executes trials until the batch is done or the pool context is
cancelled. Cancellation is only observed between trials, never inside one.
*/
func (w *shotWorker) run() batchResult {
	res := batchResult{
		worker: w.id,
		counts: make(map[string]int),
	}
	if w.pool.config.memory {
		res.memory = make([]string, 0, w.shots)
	}

	logger.Debug("worker started", "worker", w.id, "shots", w.shots)

	for res.completed < w.shots {
		if w.pool.ctx.Err() != nil {
			logger.Debug("worker stopped early", "worker", w.id, "completed", res.completed)
			break
		}

		outcome, err := w.processTrial()
		if err != nil {
			res.err = fmt.Errorf("worker %d shot %d: %w", w.id, res.completed, err)
			return res
		}

		res.counts[outcome]++
		if res.memory != nil {
			res.memory = append(res.memory, outcome)
		}
		res.completed++
	}

	return res
}

func (w *shotWorker) processTrial() (string, error) {
	startTime := time.Now()

	t, err := newTrial(w.pool.circuit, w.src, w.pool.config.tolerance)
	if err != nil {
		return "", err
	}
	if err := t.replay(w.pool.ops); err != nil {
		return "", err
	}

	w.pool.config.metrics.recordTrial(time.Since(startTime), w.pool.gates, w.pool.measures)
	return t.outcome(), nil
}
