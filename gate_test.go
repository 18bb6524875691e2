package qsim

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGateLibrary(t *testing.T) {
	Convey("Given the built-in gate set", t, func() {
		Convey("Every gate should be unitary", func() {
			for name, def := range gates {
				params := make([]float64, def.params)
				for i := range params {
					params[i] = 0.3 * float64(i+1)
				}

				m, err := LookupGate(name, params)
				So(err, ShouldBeNil)
				So(m.Qubits(), ShouldEqual, def.qubits)
				So(m.IsUnitary(1e-12), ShouldBeTrue)
			}
		})

		Convey("Names should be case-insensitive", func() {
			m, err := LookupGate("H", nil)
			So(err, ShouldBeNil)
			So(real(m.At(0, 0)), ShouldAlmostEqual, 1/math.Sqrt2)
		})

		Convey("Unknown names and wrong parameter counts should fail", func() {
			_, err := LookupGate("ccx", nil)
			So(errors.Is(err, ErrUnknownGate), ShouldBeTrue)

			_, err = LookupGate("u3", []float64{1})
			So(errors.Is(err, ErrGateArity), ShouldBeTrue)
		})
	})
}

func TestMatrix(t *testing.T) {
	Convey("Given matrix data", t, func() {
		Convey("A power-of-two dimension should give the qubit count", func() {
			m, err := NewMatrix(4, make([]complex128, 16))
			So(err, ShouldBeNil)
			So(m.Qubits(), ShouldEqual, 2)
			So(m.Dim(), ShouldEqual, 4)
		})

		Convey("Bad shapes should fail", func() {
			_, err := NewMatrix(3, make([]complex128, 9))
			So(errors.Is(err, ErrGateArity), ShouldBeTrue)

			_, err = NewMatrix(2, make([]complex128, 3))
			So(errors.Is(err, ErrGateArity), ShouldBeTrue)
		})

		Convey("A scaling matrix should not be unitary", func() {
			m, err := NewMatrix(2, []complex128{1, 0, 0, 2})
			So(err, ShouldBeNil)
			So(m.IsUnitary(1e-9), ShouldBeFalse)
		})

		Convey("The caller's slice should not alias the matrix", func() {
			data := []complex128{1, 0, 0, 1}
			m, _ := NewMatrix(2, data)
			data[0] = 5
			So(m.At(0, 0), ShouldEqual, complex(1, 0))
		})
	})
}
