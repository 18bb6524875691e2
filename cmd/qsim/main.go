package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/pflag"
	"github.com/theapemachine/qsim"
)

type example struct {
	name  string
	mode  qsim.Mode
	build func() (*qsim.Circuit, error)
}

var examples = []example{
	{"measure-ground", qsim.Sampling, func() (*qsim.Circuit, error) {
		c, err := qsim.BuildCircuit(1, 1)
		if err != nil {
			return nil, err
		}
		return c, c.Measure(0, 0)
	}},
	{"identity-state", qsim.StateVectorMode, func() (*qsim.Circuit, error) {
		c, err := qsim.BuildCircuit(1, 1)
		if err != nil {
			return nil, err
		}
		return c, c.Iden(0)
	}},
	{"hadamard-state", qsim.StateVectorMode, func() (*qsim.Circuit, error) {
		c, err := qsim.BuildCircuit(1, 1)
		if err != nil {
			return nil, err
		}
		return c, c.H(0)
	}},
	{"hadamard-counts", qsim.Sampling, func() (*qsim.Circuit, error) {
		c, err := qsim.BuildCircuit(1, 1)
		if err != nil {
			return nil, err
		}
		if err := c.H(0); err != nil {
			return nil, err
		}
		return c, c.Measure(0, 0)
	}},
	{"bell-counts", qsim.Sampling, func() (*qsim.Circuit, error) {
		c, err := qsim.BuildCircuit(2, 2)
		if err != nil {
			return nil, err
		}
		for _, step := range []func() error{
			func() error { return c.H(0) },
			func() error { return c.CX(0, 1) },
			func() error { return c.Measure(0, 0) },
			func() error { return c.Measure(1, 1) },
		} {
			if err := step(); err != nil {
				return nil, err
			}
		}
		return c, nil
	}},
}

type flags struct {
	set        *pflag.FlagSet
	configPath *string
	name       *string
	shots      *int
	seed       *uint64
	workers    *int
	logLevel   *string
	list       *bool
}

func newFlags() *flags {
	fs := pflag.NewFlagSet("qsim", pflag.ExitOnError)

	return &flags{
		set:        fs,
		configPath: fs.StringP("config", "c", "", "config file (yaml, toml or json)"),
		name:       fs.StringP("example", "e", "all", "example to run"),
		shots:      fs.IntP("shots", "s", 0, "shots per sampling run (0 uses the config)"),
		seed:       fs.Uint64("seed", 0, "random seed (unset draws a fresh one)"),
		workers:    fs.IntP("workers", "w", 0, "sampling workers (0 uses the config)"),
		logLevel:   fs.String("log-level", "", "log level override"),
		list:       fs.BoolP("list", "l", false, "list the examples and exit"),
	}
}

// runOptions turns the flags that were actually given into run options.
func (f *flags) runOptions(cfg *qsim.Config) []qsim.RunOption {
	opts := []qsim.RunOption{qsim.WithConfig(cfg)}
	if *f.shots > 0 {
		opts = append(opts, qsim.WithShots(*f.shots))
	}
	if f.set.Changed("seed") {
		opts = append(opts, qsim.WithSeed(*f.seed))
	}
	if *f.workers > 0 {
		opts = append(opts, qsim.WithWorkers(*f.workers))
	}
	return opts
}

func main() {
	f := newFlags()
	_ = f.set.Parse(os.Args[1:])

	if *f.list {
		for _, ex := range examples {
			fmt.Printf("%-16s %s\n", ex.name, ex.mode)
		}
		return
	}

	cfg, err := qsim.LoadConfig(*f.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *f.logLevel != "" {
		level = *f.logLevel
	}
	if err := qsim.SetLogLevel(level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := f.runOptions(cfg)
	name := f.name

	found := false
	for _, ex := range examples {
		if *name != "all" && *name != ex.name {
			continue
		}
		found = true

		if err := runExample(ctx, ex, opts); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", ex.name, err)
			os.Exit(1)
		}
	}

	if !found {
		fmt.Fprintf(os.Stderr, "unknown example %q, see --list\n", *name)
		os.Exit(2)
	}
}

func runExample(ctx context.Context, ex example, opts []qsim.RunOption) error {
	c, err := ex.build()
	if err != nil {
		return err
	}

	result, err := qsim.Run(ctx, c, ex.mode, opts...)
	if err != nil && result == nil {
		return err
	}

	fmt.Printf("== %s (%s, seed %d)\n", ex.name, ex.mode, result.Seed())

	switch ex.mode {
	case qsim.StateVectorMode:
		state, err := result.StateVector()
		if err != nil {
			return err
		}
		fmt.Println(qsim.FormatAmplitudes(state))
	case qsim.Sampling:
		counts, err := result.Counts()
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %d\n", k, counts[k])
		}
	}

	// A cancelled run still prints what it collected.
	return err
}
