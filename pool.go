package qsim

import (
	"context"
	"sync"
)

type shotPoolConfig struct {
	workers   int
	shots     int
	seed      uint64
	src       Source
	memory    bool
	tolerance float64
	metrics   *Metrics
}

// batchResult is what a single worker hands back after its batch of trials.
type batchResult struct {
	worker    int
	counts    map[string]int
	memory    []string
	completed int
	err       error
}

type aggregate struct {
	counts    map[string]int
	memory    []string
	completed int
}

/*
shotPool splits the shots of a sampling run into one contiguous batch per
worker. Each worker owns its own random substream, so for a fixed seed and
worker count the merged result is always the same.
*/
type shotPool struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	circuit  *Circuit
	ops      []Operation
	config   shotPoolConfig
	gates    int
	measures int
	results  chan batchResult
}

func newShotPool(ctx context.Context, c *Circuit, ops []Operation, config shotPoolConfig) *shotPool {
	ctx, cancel := context.WithCancel(ctx)
	gates, measures := countKinds(ops)

	return &shotPool{
		ctx:      ctx,
		cancel:   cancel,
		circuit:  c,
		ops:      ops,
		config:   config,
		gates:    gates,
		measures: measures,
		results:  make(chan batchResult, config.workers),
	}
}

/*
run starts the workers, waits for all of them and merges their batches in
worker order. A trial error is fatal for the whole run and stops the other
workers at their next trial boundary.
*/
func (p *shotPool) run() (aggregate, error) {
	defer p.cancel()

	for id := 0; id < p.config.workers; id++ {
		w := &shotWorker{
			id:    id,
			pool:  p,
			shots: batchSize(p.config.shots, p.config.workers, id),
			src:   p.config.src,
		}
		if w.src == nil {
			w.src = newSubstream(p.config.seed, id)
		}

		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.results <- w.run()
		}()
	}

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	batches := make([]batchResult, p.config.workers)
	var firstErr error
	for res := range p.results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
			p.cancel()
		}
		batches[res.worker] = res
	}

	if firstErr != nil {
		return aggregate{}, firstErr
	}

	agg := aggregate{counts: make(map[string]int)}
	for _, b := range batches {
		mergeCounts(agg.counts, b.counts)
		agg.memory = append(agg.memory, b.memory...)
		agg.completed += b.completed
	}

	return agg, nil
}

// batchSize gives worker id its share of shots, spreading the remainder over the first workers.
func batchSize(shots, workers, id int) int {
	n := shots / workers
	if id < shots%workers {
		n++
	}
	return n
}
