package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

/*
Matrix is a square complex operator acting on k qubits, so its dimension is
2^k. Bit j of a row or column index is the state of the j-th target qubit
the matrix is applied to, matching the little-endian layout of StateVector.
*/
type Matrix struct {
	dense *mat.CDense
	k     int
}

/*
NewMatrix builds a matrix from row-major data. The dimension has to be a
power of two of at least 2.
*/
func NewMatrix(dim int, data []complex128) (*Matrix, error) {
	if dim < 2 || dim&(dim-1) != 0 {
		return nil, fmt.Errorf("matrix dimension %d is not a power of two: %w", dim, ErrGateArity)
	}
	if len(data) != dim*dim {
		return nil, fmt.Errorf("matrix of dimension %d needs %d entries, got %d: %w", dim, dim*dim, len(data), ErrGateArity)
	}

	k := 0
	for d := dim; d > 1; d >>= 1 {
		k++
	}

	return &Matrix{
		dense: mat.NewCDense(dim, dim, append([]complex128(nil), data...)),
		k:     k,
	}, nil
}

func mustMatrix(dim int, data ...complex128) *Matrix {
	m, err := NewMatrix(dim, data)
	if err != nil {
		panic(err)
	}
	return m
}

// Qubits is the number of qubits the matrix acts on.
func (m *Matrix) Qubits() int { return m.k }

func (m *Matrix) Dim() int {
	r, _ := m.dense.Dims()
	return r
}

func (m *Matrix) At(i, j int) complex128 {
	return m.dense.At(i, j)
}

// IsUnitary reports whether U†U equals the identity within tol.
func (m *Matrix) IsUnitary(tol float64) bool {
	dim := m.Dim()

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var sum complex128
			for k := 0; k < dim; k++ {
				sum += cmplx.Conj(m.dense.At(k, i)) * m.dense.At(k, j)
			}

			want := 0.0
			if i == j {
				want = 1
			}
			if !scalar.EqualWithinAbs(real(sum), want, tol) || !scalar.EqualWithinAbs(imag(sum), 0, tol) {
				return false
			}
		}
	}

	return true
}

type gateDef struct {
	qubits int
	params int
	build  func(p []float64) *Matrix
}

func fixed(qubits int, m *Matrix) gateDef {
	return gateDef{qubits: qubits, build: func([]float64) *Matrix { return m }}
}

func phase(theta float64) complex128 {
	return cmplx.Exp(complex(0, theta))
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

var gates = map[string]gateDef{
	"id":   fixed(1, mustMatrix(2, 1, 0, 0, 1)),
	"x":    fixed(1, mustMatrix(2, 0, 1, 1, 0)),
	"y":    fixed(1, mustMatrix(2, 0, -1i, 1i, 0)),
	"z":    fixed(1, mustMatrix(2, 1, 0, 0, -1)),
	"h":    fixed(1, mustMatrix(2, invSqrt2, invSqrt2, invSqrt2, -invSqrt2)),
	"s":    fixed(1, mustMatrix(2, 1, 0, 0, 1i)),
	"sdg":  fixed(1, mustMatrix(2, 1, 0, 0, -1i)),
	"t":    fixed(1, mustMatrix(2, 1, 0, 0, phase(math.Pi/4))),
	"tdg":  fixed(1, mustMatrix(2, 1, 0, 0, phase(-math.Pi/4))),
	"p":    {qubits: 1, params: 1, build: phaseGate},
	"u1":   {qubits: 1, params: 1, build: phaseGate},
	"rx":   {qubits: 1, params: 1, build: rxGate},
	"ry":   {qubits: 1, params: 1, build: ryGate},
	"rz":   {qubits: 1, params: 1, build: rzGate},
	"u3":   {qubits: 1, params: 3, build: u3Gate},
	"cx":   fixed(2, mustMatrix(4, 1, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0)),
	"cz":   fixed(2, mustMatrix(4, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, -1)),
	"swap": fixed(2, mustMatrix(4, 1, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 1)),
}

func phaseGate(p []float64) *Matrix {
	return mustMatrix(2, 1, 0, 0, phase(p[0]))
}

func rxGate(p []float64) *Matrix {
	c := complex(math.Cos(p[0]/2), 0)
	s := complex(0, -math.Sin(p[0]/2))
	return mustMatrix(2, c, s, s, c)
}

func ryGate(p []float64) *Matrix {
	c := complex(math.Cos(p[0]/2), 0)
	s := complex(math.Sin(p[0]/2), 0)
	return mustMatrix(2, c, -s, s, c)
}

func rzGate(p []float64) *Matrix {
	return mustMatrix(2, phase(-p[0]/2), 0, 0, phase(p[0]/2))
}

// u3Gate is the general single-qubit rotation U(θ, φ, λ).
func u3Gate(p []float64) *Matrix {
	theta, phi, lambda := p[0], p[1], p[2]
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return mustMatrix(2,
		c, -phase(lambda)*s,
		phase(phi)*s, phase(phi+lambda)*c,
	)
}

/*
LookupGate resolves a named gate with its parameters into a matrix. Names
are case-insensitive.
*/
func LookupGate(name string, params []float64) (*Matrix, error) {
	def, ok := gates[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownGate)
	}
	if len(params) != def.params {
		return nil, fmt.Errorf("%s takes %d parameters, got %d: %w", name, def.params, len(params), ErrGateArity)
	}

	return def.build(params), nil
}

// gateQubits returns how many qubits a named gate acts on.
func gateQubits(name string) (int, bool) {
	def, ok := gates[strings.ToLower(name)]
	return def.qubits, ok
}
