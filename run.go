package qsim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/theapemachine/errnie"
)

type runOptions struct {
	shots    int
	hasShots bool
	seed     uint64
	hasSeed  bool
	src      Source
	workers  int
	memory   bool
	config   *Config
	metrics  *Metrics
}

// RunOption configures a single Run.
type RunOption func(*runOptions)

// WithShots sets the number of trials in sampling mode.
func WithShots(n int) RunOption {
	return func(o *runOptions) {
		o.shots = n
		o.hasShots = true
	}
}

// WithSeed makes the run reproducible.
func WithSeed(seed uint64) RunOption {
	return func(o *runOptions) {
		o.seed = seed
		o.hasSeed = true
	}
}

/*
WithSource draws every measurement from a caller-owned random source. One
source cannot be split into substreams, so this forces a single worker.
*/
func WithSource(src Source) RunOption {
	return func(o *runOptions) {
		o.src = src
	}
}

// WithWorkers spreads sampling trials over n goroutines.
func WithWorkers(n int) RunOption {
	return func(o *runOptions) {
		o.workers = n
	}
}

// WithMemory records the bit string of every shot.
func WithMemory() RunOption {
	return func(o *runOptions) {
		o.memory = true
	}
}

// WithConfig supplies the defaults for everything not set by another option.
func WithConfig(cfg *Config) RunOption {
	return func(o *runOptions) {
		o.config = cfg
	}
}

// WithMetrics records into m instead of a fresh Metrics.
func WithMetrics(m *Metrics) RunOption {
	return func(o *runOptions) {
		o.metrics = m
	}
}

/*
Run executes a circuit in the given mode.

In Sampling mode every shot starts from a fresh ground state and the final
classical bits are counted. When ctx is cancelled the run stops between
trials and returns the partial ResultSet together with an error wrapping
ctx.Err().

In StateVectorMode the circuit runs exactly once, measurements still sample
and collapse, and the ResultSet holds the final amplitudes.
*/
func Run(ctx context.Context, c *Circuit, mode Mode, opts ...RunOption) (*ResultSet, error) {
	if c == nil {
		return nil, fmt.Errorf("nil circuit: %w", ErrEmptyCircuit)
	}

	o := runOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.config
	if cfg == nil {
		cfg = NewConfig()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics()
	}
	if !o.hasShots {
		o.shots = cfg.Shots
	}
	if o.workers == 0 {
		o.workers = cfg.Workers
	}
	if !o.hasSeed {
		o.seed, o.hasSeed = cfg.Seed, cfg.HasSeed
	}
	if !o.hasSeed {
		o.seed = rand.Uint64()
	}

	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}

	errnie.Info("Run - mode %v, operations %d, shots %d, workers %d, seed %d", mode, c.Len(), o.shots, o.workers, o.seed)
	o.metrics.recordRun()

	switch mode {
	case Sampling:
		return runSampling(ctx, c, o, tolerance)
	case StateVectorMode:
		return runStateVector(c, o, tolerance)
	default:
		return nil, fmt.Errorf("unknown execution mode %v: %w", mode, ErrModeMismatch)
	}
}

func runStateVector(c *Circuit, o runOptions, tolerance float64) (*ResultSet, error) {
	ops := c.Operations()
	if len(ops) == 0 {
		return nil, ErrEmptyCircuit
	}
	if err := verifyOperators(ops, tolerance); err != nil {
		return nil, err
	}

	src := o.src
	if src == nil {
		src = newSubstream(o.seed, 0)
	}

	start := time.Now()

	t, err := newTrial(c, src, tolerance)
	if err != nil {
		return nil, err
	}
	if err := t.replay(ops); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	gates, measurements := countKinds(ops)
	o.metrics.recordTrial(duration, gates, measurements)

	if debugEnabled() {
		logger.Debug("state vector run finished", "duration", duration, "amplitudes", spew.Sdump(t.sv.amps))
	}

	return &ResultSet{
		mode:     StateVectorMode,
		state:    t.sv,
		metrics:  o.metrics,
		shots:    1,
		seed:     o.seed,
		duration: duration,
	}, nil
}

func runSampling(ctx context.Context, c *Circuit, o runOptions, tolerance float64) (*ResultSet, error) {
	if o.shots < 1 {
		return nil, fmt.Errorf("shots=%d: %w", o.shots, ErrInvalidShots)
	}

	ops := c.Operations()
	if err := verifyOperators(ops, tolerance); err != nil {
		return nil, err
	}

	workers := max(o.workers, 1)
	if o.src != nil && workers > 1 {
		logger.Warn("caller-owned random source forces a single worker", "requested", workers)
		workers = 1
	}
	workers = min(workers, o.shots)

	start := time.Now()

	pool := newShotPool(ctx, c, ops, shotPoolConfig{
		workers:   workers,
		shots:     o.shots,
		seed:      o.seed,
		src:       o.src,
		memory:    o.memory,
		tolerance: tolerance,
		metrics:   o.metrics,
	})
	agg, err := pool.run()
	if err != nil {
		return nil, err
	}

	rs := &ResultSet{
		mode:     Sampling,
		counts:   agg.counts,
		memory:   agg.memory,
		metrics:  o.metrics,
		shots:    agg.completed,
		seed:     o.seed,
		duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil && agg.completed < o.shots {
		rs.partial = true
		return rs, fmt.Errorf("run cancelled after %d of %d shots: %w", agg.completed, o.shots, ctxErr)
	}

	return rs, nil
}

// newSubstream returns the random stream owned by worker id for a given seed.
func newSubstream(seed uint64, id int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(id)))
}

func countKinds(ops []Operation) (gates, measurements int) {
	for _, op := range ops {
		switch op.Kind {
		case OpGate:
			gates++
		case OpMeasure:
			measurements++
		}
	}
	return gates, measurements
}
