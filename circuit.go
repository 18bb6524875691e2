package qsim

import (
	"fmt"
	"strings"
)

// OpKind tags the variant held by an Operation.
type OpKind int

const (
	OpGate OpKind = iota
	OpMeasure
	OpIdentity
)

func (k OpKind) String() string {
	switch k {
	case OpGate:
		return "gate"
	case OpMeasure:
		return "measure"
	case OpIdentity:
		return "identity"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

/*
Operation is one step of a circuit. Gates carry their resolved matrix and
target qubits, measurements carry a single qubit and the classical bit that
receives the outcome, identities carry a single qubit.
*/
type Operation struct {
	Kind   OpKind
	Name   string
	Qubits []int
	Params []float64
	Clbit  int
	Matrix *Matrix
}

func (op Operation) String() string {
	switch op.Kind {
	case OpMeasure:
		return fmt.Sprintf("measure q[%d] -> c[%d]", op.Qubits[0], op.Clbit)
	case OpIdentity:
		return "id"
	}

	if len(op.Params) == 0 {
		return op.Name
	}

	params := make([]string, len(op.Params))
	for i, p := range op.Params {
		params[i] = fmt.Sprintf("%g", p)
	}
	return fmt.Sprintf("%s(%s)", op.Name, strings.Join(params, ","))
}

func (op Operation) clone() Operation {
	op.Qubits = append([]int(nil), op.Qubits...)
	if op.Params != nil {
		op.Params = append([]float64(nil), op.Params...)
	}
	return op
}

/*
Circuit is an append-only list of operations bound to a quantum and a
classical register. Every index is checked when the operation is appended,
so a circuit that was built without errors can always be executed.
*/
type Circuit struct {
	qubits *QubitRegister
	clbits *ClassicalRegister
	ops    []Operation
}

func NewCircuit(qubits *QubitRegister, clbits *ClassicalRegister) (*Circuit, error) {
	if qubits == nil || clbits == nil {
		return nil, fmt.Errorf("circuit needs both registers: %w", ErrRegisterSize)
	}

	return &Circuit{
		qubits: qubits,
		clbits: clbits,
		ops:    make([]Operation, 0),
	}, nil
}

// BuildCircuit allocates both registers and binds a new circuit to them.
func BuildCircuit(numQubits, numClbits int) (*Circuit, error) {
	q, err := NewQuantumRegister(numQubits)
	if err != nil {
		return nil, err
	}

	c, err := NewClassicalRegister(numClbits)
	if err != nil {
		return nil, err
	}

	return NewCircuit(q, c)
}

func (c *Circuit) QubitRegister() *QubitRegister         { return c.qubits }
func (c *Circuit) ClassicalRegister() *ClassicalRegister { return c.clbits }
func (c *Circuit) NumQubits() int                        { return c.qubits.Size() }
func (c *Circuit) NumClbits() int                        { return c.clbits.Size() }
func (c *Circuit) Len() int                              { return len(c.ops) }

// Operations returns a copy of the operation list in append order.
func (c *Circuit) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	for i, op := range c.ops {
		out[i] = op.clone()
	}
	return out
}

/*
AppendGate appends a named gate from the built-in gate set. The number of
qubits and parameters must match the gate.
*/
func (c *Circuit) AppendGate(name string, qubits []int, params ...float64) error {
	arity, ok := gateQubits(name)
	if !ok {
		return c.appendError(name, qubits, ErrUnknownGate)
	}
	if len(qubits) != arity {
		return c.appendError(name, qubits, fmt.Errorf("%s acts on %d qubits, got %d: %w", name, arity, len(qubits), ErrGateArity))
	}
	if err := c.checkQubits(qubits); err != nil {
		return c.appendError(name, qubits, err)
	}

	m, err := LookupGate(name, params)
	if err != nil {
		return c.appendError(name, qubits, err)
	}

	c.ops = append(c.ops, Operation{
		Kind:   OpGate,
		Name:   strings.ToLower(name),
		Qubits: append([]int(nil), qubits...),
		Params: append([]float64(nil), params...),
		Matrix: m,
	})
	return nil
}

/*
AppendUnitary appends a caller-supplied operator. Only its shape is checked
here; whether it is actually unitary is checked when the circuit runs.
*/
func (c *Circuit) AppendUnitary(name string, m *Matrix, qubits []int) error {
	if m == nil {
		return c.appendError(name, qubits, fmt.Errorf("nil matrix: %w", ErrGateArity))
	}
	if len(qubits) != m.Qubits() {
		return c.appendError(name, qubits, fmt.Errorf("matrix acts on %d qubits, got %d: %w", m.Qubits(), len(qubits), ErrGateArity))
	}
	if err := c.checkQubits(qubits); err != nil {
		return c.appendError(name, qubits, err)
	}

	c.ops = append(c.ops, Operation{
		Kind:   OpGate,
		Name:   name,
		Qubits: append([]int(nil), qubits...),
		Matrix: m,
	})
	return nil
}

// AppendMeasurement measures qubit into classical bit clbit.
func (c *Circuit) AppendMeasurement(qubit, clbit int) error {
	if _, err := c.qubits.Slot(qubit); err != nil {
		return c.appendError("measure", []int{qubit}, err)
	}
	if _, err := c.clbits.Slot(clbit); err != nil {
		return c.appendError("measure", []int{qubit}, err)
	}

	c.ops = append(c.ops, Operation{
		Kind:   OpMeasure,
		Name:   "measure",
		Qubits: []int{qubit},
		Clbit:  clbit,
	})
	return nil
}

func (c *Circuit) AppendIdentity(qubit int) error {
	if _, err := c.qubits.Slot(qubit); err != nil {
		return c.appendError("id", []int{qubit}, err)
	}

	c.ops = append(c.ops, Operation{
		Kind:   OpIdentity,
		Name:   "id",
		Qubits: []int{qubit},
	})
	return nil
}

func (c *Circuit) checkQubits(qubits []int) error {
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if _, err := c.qubits.Slot(q); err != nil {
			return err
		}
		if seen[q] {
			return fmt.Errorf("qubit %d used twice: %w", q, ErrIndexOutOfRange)
		}
		seen[q] = true
	}
	return nil
}

func (c *Circuit) appendError(name string, qubits []int, err error) error {
	return &OpError{
		Index:  len(c.ops),
		Op:     name,
		Qubits: append([]int(nil), qubits...),
		Err:    err,
	}
}

// Shorthands in the style of the usual circuit DSLs.

func (c *Circuit) Iden(q int) error              { return c.AppendIdentity(q) }
func (c *Circuit) H(q int) error                 { return c.AppendGate("h", []int{q}) }
func (c *Circuit) X(q int) error                 { return c.AppendGate("x", []int{q}) }
func (c *Circuit) Y(q int) error                 { return c.AppendGate("y", []int{q}) }
func (c *Circuit) Z(q int) error                 { return c.AppendGate("z", []int{q}) }
func (c *Circuit) S(q int) error                 { return c.AppendGate("s", []int{q}) }
func (c *Circuit) T(q int) error                 { return c.AppendGate("t", []int{q}) }
func (c *Circuit) P(lambda float64, q int) error { return c.AppendGate("p", []int{q}, lambda) }
func (c *Circuit) RX(theta float64, q int) error { return c.AppendGate("rx", []int{q}, theta) }
func (c *Circuit) RY(theta float64, q int) error { return c.AppendGate("ry", []int{q}, theta) }
func (c *Circuit) RZ(theta float64, q int) error { return c.AppendGate("rz", []int{q}, theta) }
func (c *Circuit) CX(control, target int) error  { return c.AppendGate("cx", []int{control, target}) }
func (c *Circuit) CZ(control, target int) error  { return c.AppendGate("cz", []int{control, target}) }
func (c *Circuit) Swap(a, b int) error           { return c.AppendGate("swap", []int{a, b}) }
func (c *Circuit) Measure(q, clbit int) error    { return c.AppendMeasurement(q, clbit) }
