package qsim

import "fmt"

/*
QubitRegister is an ordered set of qubit slots. Slot i addresses qubit i of
the state vector, which is bit i (value 1<<i) of a basis-state index.
*/
type QubitRegister struct {
	size int
}

func NewQuantumRegister(n int) (*QubitRegister, error) {
	if n <= 0 {
		return nil, fmt.Errorf("quantum register of %d qubits: %w", n, ErrRegisterSize)
	}

	return &QubitRegister{size: n}, nil
}

func (r *QubitRegister) Size() int { return r.size }

// Slot returns the stable handle for the i-th qubit.
func (r *QubitRegister) Slot(i int) (int, error) {
	if i < 0 || i >= r.size {
		return 0, fmt.Errorf("qubit %d of %d: %w", i, r.size, ErrIndexOutOfRange)
	}
	return i, nil
}

func (r *QubitRegister) Slots() []int {
	return slots(r.size)
}

/*
ClassicalRegister is an ordered set of classical-bit slots. The register only
describes the layout; the bit values of a running trial live in that trial.
*/
type ClassicalRegister struct {
	size int
}

func NewClassicalRegister(m int) (*ClassicalRegister, error) {
	if m <= 0 {
		return nil, fmt.Errorf("classical register of %d bits: %w", m, ErrRegisterSize)
	}

	return &ClassicalRegister{size: m}, nil
}

func (r *ClassicalRegister) Size() int { return r.size }

// Slot returns the stable handle for the i-th classical bit.
func (r *ClassicalRegister) Slot(i int) (int, error) {
	if i < 0 || i >= r.size {
		return 0, fmt.Errorf("classical bit %d of %d: %w", i, r.size, ErrIndexOutOfRange)
	}
	return i, nil
}

func (r *ClassicalRegister) Slots() []int {
	return slots(r.size)
}

// Bit is the value of one classical bit during a trial.
type Bit int8

const (
	BitUnset Bit = -1
	BitZero  Bit = 0
	BitOne   Bit = 1
)

// newBits returns the per-trial storage for a classical register, all unset.
func (r *ClassicalRegister) newBits() []Bit {
	bits := make([]Bit, r.size)
	for i := range bits {
		bits[i] = BitUnset
	}
	return bits
}

/*
bitString renders classical bits with bit 0 rightmost. Bits that were never
measured read as 0.
*/
func bitString(bits []Bit) string {
	out := make([]byte, len(bits))
	for i, b := range bits {
		c := byte('0')
		if b == BitOne {
			c = '1'
		}
		out[len(bits)-1-i] = c
	}
	return string(out)
}

func slots(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
