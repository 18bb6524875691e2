package qsim

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRegisters(t *testing.T) {
	Convey("Given register sizes", t, func() {
		Convey("When allocating positive sizes", func() {
			q, err := NewQuantumRegister(3)
			So(err, ShouldBeNil)
			c, err := NewClassicalRegister(2)
			So(err, ShouldBeNil)

			Convey("Then handles should be stable indices", func() {
				So(q.Size(), ShouldEqual, 3)
				So(q.Slots(), ShouldResemble, []int{0, 1, 2})
				So(c.Slots(), ShouldResemble, []int{0, 1})

				slot, err := q.Slot(2)
				So(err, ShouldBeNil)
				So(slot, ShouldEqual, 2)
			})

			Convey("Then out-of-range handles should fail", func() {
				_, err := q.Slot(3)
				So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
				_, err = c.Slot(-1)
				So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
			})

			Convey("Then fresh classical bits should be unset", func() {
				bits := c.newBits()
				So(bits, ShouldResemble, []Bit{BitUnset, BitUnset})
			})
		})

		Convey("When allocating non-positive sizes", func() {
			_, err := NewQuantumRegister(0)
			So(errors.Is(err, ErrRegisterSize), ShouldBeTrue)

			_, err = NewClassicalRegister(-2)
			So(errors.Is(err, ErrRegisterSize), ShouldBeTrue)
		})
	})
}

func TestBitString(t *testing.T) {
	Convey("Given classical bits", t, func() {
		Convey("Bit 0 should be rightmost", func() {
			So(bitString([]Bit{BitOne, BitZero}), ShouldEqual, "01")
			So(bitString([]Bit{BitZero, BitOne, BitOne}), ShouldEqual, "110")
		})

		Convey("Unset bits should read as zero", func() {
			So(bitString([]Bit{BitUnset, BitOne}), ShouldEqual, "10")
		})
	})
}
