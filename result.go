package qsim

import (
	"fmt"
	"time"
)

// Mode selects how a circuit is executed and what the ResultSet holds.
type Mode int

const (
	// Sampling runs the circuit once per shot and counts classical outcomes.
	Sampling Mode = iota + 1
	// StateVectorMode runs the circuit once and keeps the final amplitudes.
	StateVectorMode
)

func (m Mode) String() string {
	switch m {
	case Sampling:
		return "sampling"
	case StateVectorMode:
		return "statevector"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

/*
ResultSet is the immutable outcome of one Run. Which accessor works depends
on the mode the run was made in; the other one returns ErrModeMismatch.
*/
type ResultSet struct {
	mode    Mode
	counts  map[string]int
	memory  []string
	state   *StateVector
	metrics *Metrics

	shots    int
	seed     uint64
	duration time.Duration
	partial  bool
}

func (rs *ResultSet) Mode() Mode { return rs.mode }

// Shots is the number of completed trials, lower than requested when the
// run was cancelled.
func (rs *ResultSet) Shots() int { return rs.shots }

// Seed is the seed the run used, drawn fresh when none was given.
func (rs *ResultSet) Seed() uint64 { return rs.seed }

func (rs *ResultSet) Duration() time.Duration { return rs.duration }

// Partial reports whether the run was cancelled before every shot finished.
func (rs *ResultSet) Partial() bool { return rs.partial }

// Counts maps classical bit strings (bit 0 rightmost) to how often they occurred.
func (rs *ResultSet) Counts() (map[string]int, error) {
	if rs.mode != Sampling {
		return nil, fmt.Errorf("counts requested from a %s result: %w", rs.mode, ErrModeMismatch)
	}

	out := make(map[string]int, len(rs.counts))
	for k, v := range rs.counts {
		out[k] = v
	}
	return out, nil
}

// StateVector returns the final amplitudes of a state-vector run.
func (rs *ResultSet) StateVector() ([]complex128, error) {
	if rs.mode != StateVectorMode {
		return nil, fmt.Errorf("state vector requested from a %s result: %w", rs.mode, ErrModeMismatch)
	}
	return rs.state.Amplitudes(), nil
}

/*
Memory returns the per-shot bit strings in execution order. It is only
recorded when the run was made WithMemory.
*/
func (rs *ResultSet) Memory() ([]string, error) {
	if rs.mode != Sampling {
		return nil, fmt.Errorf("memory requested from a %s result: %w", rs.mode, ErrModeMismatch)
	}
	return append([]string(nil), rs.memory...), nil
}

// Metrics returns the metrics the run recorded into.
func (rs *ResultSet) Metrics() *Metrics { return rs.metrics }

// mergeCounts adds src into dst. Order of merging does not matter.
func mergeCounts(dst, src map[string]int) {
	for k, v := range src {
		dst[k] += v
	}
}
