// Command convbench compares the convolution strategies of package conv.
//
// Usage:
//
//	convbench [flags]
//
// It convolves deterministic noise with each selected strategy, prints the
// mean time per call and a checksum, and verifies that all strategies agree
// bit for bit.
//
// Examples:
//
//	convbench
//	convbench -signal 16384 -kernel 256 -iterations 20
//	convbench -strategy windowed -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-convolve/dsp/conv"
)

var errParityMismatch = errors.New("convbench: strategies disagree")

type config struct {
	signalLen  int
	kernelLen  int
	iterations int
	seed       int64
	strategies []conv.Strategy
	verbose    bool
}

type result struct {
	strategy conv.Strategy
	perCall  time.Duration
	checksum float64
	output   []float64
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errParityMismatch):
		os.Exit(1)
	default:
		os.Exit(2)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return err
	}

	logger := newLogger(stderr, cfg.verbose)
	logger.Debug().
		Int("signal", cfg.signalLen).
		Int("kernel", cfg.kernelLen).
		Int("iterations", cfg.iterations).
		Int64("seed", cfg.seed).
		Msg("starting benchmark")

	features := cpu.DetectFeatures()
	logger.Debug().
		Str("arch", features.Architecture).
		Bool("sse2", features.HasSSE2).
		Bool("avx2", features.HasAVX2).
		Bool("neon", features.HasNEON).
		Msg("vector kernels")

	rng := rand.New(rand.NewSource(cfg.seed))
	signal := noise(rng, cfg.signalLen)
	kernel := noise(rng, cfg.kernelLen)

	results := make([]result, 0, len(cfg.strategies))
	for _, s := range cfg.strategies {
		r, err := measure(s, signal, kernel, cfg.iterations)
		if err != nil {
			logger.Error().Err(err).Stringer("strategy", s).Msg("convolution failed")
			return err
		}
		logger.Debug().Stringer("strategy", s).Dur("per_call", r.perCall).Msg("strategy done")
		results = append(results, r)
	}

	if err := printResults(stdout, cfg, results); err != nil {
		return err
	}

	if err := checkParity(results); err != nil {
		logger.Error().Err(err).Msg("parity check failed")
		return err
	}
	logger.Info().Int("strategies", len(results)).Msg("all strategies bit-identical")
	return nil
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("convbench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	var strategies string
	fs.IntVar(&cfg.signalLen, "signal", 4096, "signal length in samples")
	fs.IntVar(&cfg.kernelLen, "kernel", 64, "kernel length in samples")
	fs.IntVar(&cfg.iterations, "iterations", 50, "convolutions per strategy")
	fs.Int64Var(&cfg.seed, "seed", 1, "seed for the generated inputs")
	fs.StringVar(&strategies, "strategy", "", "comma-separated strategies to run (default all)")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: convbench [flags]\n\n")
		_, _ = fmt.Fprintf(stderr, "Compares convolution strategies on deterministic noise.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.signalLen <= 0 || cfg.kernelLen <= 0 {
		return config{}, fmt.Errorf("signal and kernel lengths must be positive, got %d and %d", cfg.signalLen, cfg.kernelLen)
	}
	if cfg.iterations <= 0 {
		return config{}, fmt.Errorf("iterations must be positive, got %d", cfg.iterations)
	}

	if strategies == "" {
		cfg.strategies = conv.Strategies()
		return cfg, nil
	}
	for _, name := range strings.Split(strategies, ",") {
		s, err := conv.ParseStrategy(name)
		if err != nil {
			return config{}, err
		}
		cfg.strategies = append(cfg.strategies, s)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// noise returns n uniform samples in [-1, 1).
func noise(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

func measure(s conv.Strategy, signal, kernel []float64, iterations int) (result, error) {
	var out []float64
	start := time.Now()
	for i := 0; i < iterations; i++ {
		var err error
		out, err = conv.Convolve(signal, kernel, s)
		if err != nil {
			return result{}, err
		}
	}
	elapsed := time.Since(start)

	sum := 0.0
	for _, v := range out {
		sum += v
	}

	return result{
		strategy: s,
		perCall:  elapsed / time.Duration(iterations),
		checksum: sum,
		output:   out,
	}, nil
}

func checkParity(results []result) error {
	if len(results) < 2 {
		return nil
	}
	ref := results[0]
	for _, r := range results[1:] {
		if len(ref.output) != len(r.output) {
			return fmt.Errorf("%w: %s and %s differ in length", errParityMismatch, ref.strategy, r.strategy)
		}
		for i := range ref.output {
			if math.Float64bits(ref.output[i]) != math.Float64bits(r.output[i]) {
				return fmt.Errorf("%w: %s and %s differ at index %d", errParityMismatch, ref.strategy, r.strategy, i)
			}
		}
	}
	return nil
}

func printResults(w io.Writer, cfg config, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Strategy\tSignal\tKernel\tTime/call\tMSamples/s\tChecksum\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--------\t------\t------\t---------\t----------\t--------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	outLen := cfg.signalLen + cfg.kernelLen - 1
	for _, r := range results {
		rate := math.Inf(1)
		if r.perCall > 0 {
			rate = float64(outLen) / r.perCall.Seconds() / 1e6
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%.2f\t%.9g\n",
			r.strategy,
			cfg.signalLen,
			cfg.kernelLen,
			r.perCall,
			rate,
			r.checksum,
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	return tw.Flush()
}
