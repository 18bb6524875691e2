package qsim

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given metrics with recorded trials", t, func() {
		m := NewMetrics()
		m.recordRun()
		for i := 1; i <= 100; i++ {
			m.recordTrial(time.Duration(i)*time.Microsecond, 2, 1)
		}

		Convey("Counters should add up", func() {
			snap := m.Snapshot()
			So(snap.Runs, ShouldEqual, 1)
			So(snap.Trials, ShouldEqual, 100)
			So(snap.GateApplications, ShouldEqual, 200)
			So(snap.Measurements, ShouldEqual, 100)
			So(snap.TotalTrialTime, ShouldEqual, 5050*time.Microsecond)
		})

		Convey("Latency percentiles should follow the distribution", func() {
			avg, p95, p99 := m.Latency()
			So(avg, ShouldEqual, 50500*time.Nanosecond)
			So(p95, ShouldEqual, 95*time.Microsecond)
			So(p99, ShouldEqual, 99*time.Microsecond)
		})

		Convey("The export should hold a snapshot", func() {
			export := m.ExportMetrics()
			So(export["trials"], ShouldEqual, int64(100))
			So(export["p95_latency"], ShouldEqual, int64(95))
		})
	})

	Convey("Given metrics shared by concurrent runs", t, func() {
		m := NewMetrics()
		c, _ := BuildCircuit(1, 1)
		So(c.H(0), ShouldBeNil)
		So(c.Measure(0, 0), ShouldBeNil)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(seed uint64) {
				defer wg.Done()
				_, _ = Run(context.Background(), c, Sampling, WithShots(50), WithSeed(seed), WithWorkers(2), WithMetrics(m))
			}(uint64(i))
		}

		for i := 0; i < 20; i++ {
			_ = m.Snapshot()
			_ = m.ExportMetrics()
		}
		wg.Wait()

		snap := m.Snapshot()
		So(snap.Runs, ShouldEqual, 4)
		So(snap.Trials, ShouldEqual, 200)
		So(snap.Measurements, ShouldEqual, 200)
	})

	Convey("Given an empty metrics", t, func() {
		avg, p95, p99 := NewMetrics().Latency()
		So(avg, ShouldEqual, time.Duration(0))
		So(p95, ShouldEqual, time.Duration(0))
		So(p99, ShouldEqual, time.Duration(0))
	})

	Convey("Given more trials than the window holds", t, func() {
		m := NewMetrics()
		for i := 0; i < 1500; i++ {
			m.recordTrial(time.Millisecond, 0, 0)
		}
		So(len(m.latencyWindow), ShouldEqual, 1000)
		So(m.Snapshot().Trials, ShouldEqual, 1500)
	})
}
