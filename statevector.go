package qsim

import (
	"fmt"
	"math"
	"strings"
)

// MaxQubits bounds the state vector to 2^MaxQubits amplitudes.
const MaxQubits = 28

const defaultTolerance = 1e-9

/*
StateVector holds the 2^n complex amplitudes of an n-qubit system. Basis
index i has qubit k set when bit k of i is set (little-endian), so for two
qubits the order is |q1 q0> = 00, 01, 10, 11.
*/
type StateVector struct {
	amps      []complex128
	n         int
	tolerance float64
}

// NewStateVector allocates n qubits in the all-zero ground state.
func NewStateVector(n int) (*StateVector, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("state vector of %d qubits (max %d): %w", n, MaxQubits, ErrRegisterSize)
	}

	amps := make([]complex128, 1<<n)
	amps[0] = 1

	return &StateVector{
		amps:      amps,
		n:         n,
		tolerance: defaultTolerance,
	}, nil
}

func (sv *StateVector) NumQubits() int { return sv.n }

// SetTolerance changes the numerical tolerance used by the unitarity checks.
func (sv *StateVector) SetTolerance(tol float64) {
	if tol > 0 {
		sv.tolerance = tol
	}
}

// Amplitudes returns a copy of the amplitude array.
func (sv *StateVector) Amplitudes() []complex128 {
	return append([]complex128(nil), sv.amps...)
}

// Probabilities returns |a_i|^2 for every basis state.
func (sv *StateVector) Probabilities() []float64 {
	out := make([]float64, len(sv.amps))
	for i, a := range sv.amps {
		out[i] = sqmag(a)
	}
	return out
}

// Norm is the total squared magnitude, 1 for a valid state.
func (sv *StateVector) Norm() float64 {
	var sum float64
	for _, a := range sv.amps {
		sum += sqmag(a)
	}
	return sum
}

func (sv *StateVector) Clone() *StateVector {
	return &StateVector{
		amps:      sv.Amplitudes(),
		n:         sv.n,
		tolerance: sv.tolerance,
	}
}

/*
ApplyUnitary applies a 2^k x 2^k operator to the k target qubits. Bit j of
the matrix index maps to targets[j]. Amplitudes are only touched once the
matrix has passed the unitarity check, and the norm is verified afterwards.
*/
func (sv *StateVector) ApplyUnitary(m *Matrix, targets []int) error {
	mask, err := sv.targetMask(m, targets)
	if err != nil {
		return err
	}

	if !m.IsUnitary(sv.tolerance) {
		return ErrNonUnitaryOperator
	}

	return sv.apply(m, targets, mask)
}

// applyVerified is ApplyUnitary for a matrix whose unitarity was already checked.
func (sv *StateVector) applyVerified(m *Matrix, targets []int) error {
	mask, err := sv.targetMask(m, targets)
	if err != nil {
		return err
	}

	return sv.apply(m, targets, mask)
}

func (sv *StateVector) targetMask(m *Matrix, targets []int) (int, error) {
	if m == nil || len(targets) != m.Qubits() {
		return 0, fmt.Errorf("operator on %d targets: %w", len(targets), ErrGateArity)
	}

	var mask int
	for _, t := range targets {
		if t < 0 || t >= sv.n {
			return 0, fmt.Errorf("qubit %d of %d: %w", t, sv.n, ErrIndexOutOfRange)
		}
		if mask&(1<<t) != 0 {
			return 0, fmt.Errorf("qubit %d used twice: %w", t, ErrIndexOutOfRange)
		}
		mask |= 1 << t
	}

	return mask, nil
}

func (sv *StateVector) apply(m *Matrix, targets []int, mask int) error {
	dim := m.Dim()
	offsets := make([]int, dim)
	for l := range offsets {
		for j, t := range targets {
			if l&(1<<j) != 0 {
				offsets[l] |= 1 << t
			}
		}
	}

	in := make([]complex128, dim)
	for base := range sv.amps {
		if base&mask != 0 {
			continue
		}

		for l, off := range offsets {
			in[l] = sv.amps[base|off]
		}

		for r, off := range offsets {
			var acc complex128
			for c := 0; c < dim; c++ {
				acc += m.At(r, c) * in[c]
			}
			sv.amps[base|off] = acc
		}
	}

	if norm := sv.Norm(); math.Abs(norm-1) > sv.tolerance {
		return fmt.Errorf("norm drifted to %g: %w", norm, ErrNonUnitaryOperator)
	}

	return nil
}

// ApplyIdentity leaves the amplitudes untouched.
func (sv *StateVector) ApplyIdentity(qubit int) error {
	if qubit < 0 || qubit >= sv.n {
		return fmt.Errorf("qubit %d of %d: %w", qubit, sv.n, ErrIndexOutOfRange)
	}
	return nil
}

func (sv *StateVector) String() string {
	return FormatAmplitudes(sv.amps)
}

// FormatAmplitudes prints amplitudes with three decimals, e.g. [0.707+0.000i 0.707+0.000i].
func FormatAmplitudes(amps []complex128) string {
	parts := make([]string, len(amps))
	for i, a := range amps {
		parts[i] = fmt.Sprintf("%.3f%+.3fi", suppress(real(a)), suppress(imag(a)))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// suppress rounds values that would print as -0.000 to zero.
func suppress(x float64) float64 {
	if math.Abs(x) < 5e-4 {
		return 0
	}
	return x
}

func sqmag(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}
