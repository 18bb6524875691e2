package qsim

import (
	"fmt"
	"math"
)

/*
Source supplies uniform random values in [0, 1). *rand.Rand from
math/rand/v2 satisfies it, and so does anything a caller wants to replay.
*/
type Source interface {
	Float64() float64
}

/*
Sample measures one qubit following the Born rule and collapses the state
onto the observed outcome. Both branch weights are summed from the
amplitudes, and the draw is scaled by their total, so the outcome is 0 when
draw*(p0+p1) is below p0. A branch with no weight is never selected while
the other one has some.
*/
func Sample(sv *StateVector, qubit int, src Source) (int, error) {
	if qubit < 0 || qubit >= sv.n {
		return 0, fmt.Errorf("qubit %d of %d: %w", qubit, sv.n, ErrIndexOutOfRange)
	}

	bit := 1 << qubit

	var p0, p1 float64
	for i, a := range sv.amps {
		if i&bit == 0 {
			p0 += sqmag(a)
		} else {
			p1 += sqmag(a)
		}
	}

	total := p0 + p1
	if !(total > 0) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("qubit %d with p0=%g p1=%g: %w", qubit, p0, p1, ErrDegenerateState)
	}

	// Every measurement consumes exactly one draw.
	draw := src.Float64() * total

	outcome := 0
	branch := p0
	if p1 > 0 && (p0 == 0 || draw >= p0) {
		outcome = 1
		branch = p1
	}

	collapse(sv, bit, outcome, branch)
	return outcome, nil
}

// collapse zeroes every amplitude that disagrees with outcome and divides
// the rest by the square root of the branch weight.
func collapse(sv *StateVector, bit, outcome int, branch float64) {
	scale := complex(1/math.Sqrt(branch), 0)

	for i := range sv.amps {
		set := 0
		if i&bit != 0 {
			set = 1
		}

		if set != outcome {
			sv.amps[i] = 0
			continue
		}
		sv.amps[i] *= scale
	}
}
