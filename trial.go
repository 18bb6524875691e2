package qsim

type trialState int

const (
	trialInitialized trialState = iota
	trialFinalized
)

/*
trial is a single execution of a circuit. It exclusively owns its state
vector and classical bits; nothing survives from one trial to the next
except the advancing random source.
*/
type trial struct {
	sv    *StateVector
	bits  []Bit
	src   Source
	state trialState
}

func newTrial(c *Circuit, src Source, tolerance float64) (*trial, error) {
	sv, err := NewStateVector(c.NumQubits())
	if err != nil {
		return nil, err
	}
	sv.SetTolerance(tolerance)

	return &trial{
		sv:    sv,
		bits:  c.clbits.newBits(),
		src:   src,
		state: trialInitialized,
	}, nil
}

/*
verifyOperators runs the unitarity check on every gate matrix once, so the
trials replaying ops only pay for the norm check.
*/
func verifyOperators(ops []Operation, tolerance float64) error {
	for i, op := range ops {
		if op.Kind != OpGate || op.Matrix == nil {
			continue
		}
		if !op.Matrix.IsUnitary(tolerance) {
			return opError(i, op, ErrNonUnitaryOperator)
		}
	}
	return nil
}

func (t *trial) step(index int, op Operation) error {
	if t.state == trialFinalized {
		return opError(index, op, ErrTrialFinalized)
	}

	var err error
	switch op.Kind {
	case OpGate:
		err = t.sv.applyVerified(op.Matrix, op.Qubits)
	case OpIdentity:
		err = t.sv.ApplyIdentity(op.Qubits[0])
	case OpMeasure:
		var outcome int
		if outcome, err = Sample(t.sv, op.Qubits[0], t.src); err == nil {
			t.bits[op.Clbit] = Bit(outcome)
		}
	}

	if err != nil {
		return opError(index, op, err)
	}
	return nil
}

// replay folds every operation into the state in order and finalizes.
func (t *trial) replay(ops []Operation) error {
	for i, op := range ops {
		if err := t.step(i, op); err != nil {
			return err
		}
	}

	t.state = trialFinalized
	return nil
}

func (t *trial) outcome() string {
	return bitString(t.bits)
}
