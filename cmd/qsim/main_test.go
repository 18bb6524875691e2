package main

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qsim"
)

func TestRunOptions(t *testing.T) {
	c, err := qsim.BuildCircuit(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Measure(0, 0); err != nil {
		t.Fatal(err)
	}

	Convey("Given an explicit seed of zero", t, func() {
		f := newFlags()
		So(f.set.Parse([]string{"--seed", "0", "--shots", "8"}), ShouldBeNil)

		result, err := qsim.Run(context.Background(), c, qsim.Sampling, f.runOptions(qsim.NewConfig())...)
		So(err, ShouldBeNil)

		Convey("The run should use seed 0", func() {
			So(result.Seed(), ShouldEqual, uint64(0))
			So(result.Shots(), ShouldEqual, 8)
		})
	})

	Convey("Given a seed from the config and no seed flag", t, func() {
		f := newFlags()
		So(f.set.Parse(nil), ShouldBeNil)

		cfg := qsim.NewConfig()
		cfg.Seed, cfg.HasSeed = 31, true

		result, err := qsim.Run(context.Background(), c, qsim.Sampling, f.runOptions(cfg)...)
		So(err, ShouldBeNil)

		Convey("The config seed should apply", func() {
			So(result.Seed(), ShouldEqual, uint64(31))
			So(result.Shots(), ShouldEqual, 1024)
		})
	})
}
