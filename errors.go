package qsim

import (
	"errors"
	"fmt"
)

// Construction errors are returned while a circuit is being built.
var (
	ErrRegisterSize    = errors.New("register size must be positive")
	ErrIndexOutOfRange = errors.New("register index out of range")
	ErrUnknownGate     = errors.New("unknown gate")
	ErrGateArity       = errors.New("gate arity mismatch")
)

// Execution errors are returned by Run and the ResultSet accessors.
var (
	ErrEmptyCircuit       = errors.New("circuit has no operations")
	ErrNonUnitaryOperator = errors.New("operator is not unitary")
	ErrModeMismatch       = errors.New("result was produced in a different mode")
	ErrInvalidShots       = errors.New("shots must be at least 1")
	ErrTrialFinalized     = errors.New("trial already finalized")
)

/*
ErrDegenerateState signals that a measurement selected a branch with zero
norm. It can only happen when the gate or normalization logic is broken, so
it must never be caught and retried.
*/
var ErrDegenerateState = errors.New("measurement selected a zero-norm branch")

/*
OpError locates a failure inside a circuit: the position of the operation,
what it was, and which qubits it touched.
*/
type OpError struct {
	Index  int
	Op     string
	Qubits []int
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operation %d (%s on qubits %v): %v", e.Index, e.Op, e.Qubits, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(index int, op Operation, err error) error {
	return &OpError{
		Index:  index,
		Op:     op.String(),
		Qubits: append([]int(nil), op.Qubits...),
		Err:    err,
	}
}
