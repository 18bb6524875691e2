package qsim

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fixedSource replays a list of draws, repeating the last one.
type fixedSource struct {
	draws []float64
	calls int
}

func (f *fixedSource) Float64() float64 {
	i := min(f.calls, len(f.draws)-1)
	f.calls++
	return f.draws[i]
}

func TestSample(t *testing.T) {
	Convey("Given a qubit in the ground state", t, func() {
		sv, _ := NewStateVector(1)

		Convey("It should always read 0", func() {
			src := rand.New(rand.NewPCG(1, 2))
			for i := 0; i < 100; i++ {
				outcome, err := Sample(sv, 0, src)
				So(err, ShouldBeNil)
				So(outcome, ShouldEqual, 0)
			}
		})

		Convey("The largest draw below 1 should still read 0", func() {
			outcome, err := Sample(sv, 0, &fixedSource{draws: []float64{math.Nextafter(1, 0)}})
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, 0)
			So(sv.Norm(), ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("A state with no weight should be degenerate", func() {
			sv.amps[0] = 0
			_, err := Sample(sv, 0, &fixedSource{draws: []float64{0.5}})
			So(errors.Is(err, ErrDegenerateState), ShouldBeTrue)
		})

		Convey("An unknown qubit should fail", func() {
			_, err := Sample(sv, 1, &fixedSource{draws: []float64{0}})
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})
	})

	Convey("Given a qubit in equal superposition", t, func() {
		sv, _ := NewStateVector(1)
		So(sv.ApplyUnitary(gate("h"), []int{0}), ShouldBeNil)

		Convey("A draw below p0 should give 0 and collapse to |0>", func() {
			outcome, err := Sample(sv, 0, &fixedSource{draws: []float64{0.49}})
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, 0)
			So(real(sv.Amplitudes()[0]), ShouldAlmostEqual, 1)
			So(sv.Amplitudes()[1], ShouldEqual, complex(0, 0))
		})

		Convey("A draw at or above p0 should give 1 and collapse to |1>", func() {
			outcome, err := Sample(sv, 0, &fixedSource{draws: []float64{0.51}})
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, 1)
			So(sv.Amplitudes()[0], ShouldEqual, complex(0, 0))
			So(real(sv.Amplitudes()[1]), ShouldAlmostEqual, 1)
		})

		Convey("Re-measuring without a gate in between should repeat the outcome", func() {
			src := rand.New(rand.NewPCG(7, 7))
			first, err := Sample(sv, 0, src)
			So(err, ShouldBeNil)

			for i := 0; i < 50; i++ {
				again, err := Sample(sv, 0, src)
				So(err, ShouldBeNil)
				So(again, ShouldEqual, first)
			}
			So(sv.Norm(), ShouldAlmostEqual, 1, 1e-12)
		})
	})

	Convey("Given a qubit whose other branch is empty after rounding", t, func() {
		sv, _ := NewStateVector(2)
		So(sv.ApplyUnitary(gate("ry", 0.001), []int{1}), ShouldBeNil)

		Convey("Measuring the untouched qubit with the largest draw should keep a unit norm", func() {
			outcome, err := Sample(sv, 0, &fixedSource{draws: []float64{math.Nextafter(1, 0)}})
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, 0)
			So(sv.Norm(), ShouldAlmostEqual, 1, 1e-12)
		})
	})

	Convey("Given a qubit with a tiny chance of reading 1", t, func() {
		sv, _ := NewStateVector(1)
		So(sv.ApplyUnitary(gate("ry", 2e-6), []int{0}), ShouldBeNil)

		Convey("Selecting the rare branch should renormalize exactly", func() {
			outcome, err := Sample(sv, 0, &fixedSource{draws: []float64{0.9999999999999}})
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, 1)
			So(sv.Norm(), ShouldAlmostEqual, 1, 1e-12)
			So(sv.ApplyUnitary(gate("h"), []int{0}), ShouldBeNil)
		})
	})

	Convey("Given a Bell pair", t, func() {
		sv, _ := NewStateVector(2)
		So(sv.ApplyUnitary(gate("h"), []int{0}), ShouldBeNil)
		So(sv.ApplyUnitary(gate("cx"), []int{0, 1}), ShouldBeNil)

		Convey("Measuring one qubit should fix the other", func() {
			first, err := Sample(sv, 0, &fixedSource{draws: []float64{0.9}})
			So(err, ShouldBeNil)
			So(first, ShouldEqual, 1)

			second, err := Sample(sv, 1, &fixedSource{draws: []float64{0.0}})
			So(err, ShouldBeNil)
			So(second, ShouldEqual, 1)
		})
	})
}
