// Command birkhoff realigns permuted matrix columns.
//
// Usage:
//
//	birkhoff synth [-rows 14000] [-cols 200] [-max-value 100] [-noise 3] [-seed 1]
//	               [-strategy auto] [-time-limit 0] [-print-max 10] [-v]
//	birkhoff match -ref a.csv -obs b.xlsx [-sheet Sheet1] [-no-header]
//	               [-out mapping.csv] [-strategy auto] [-time-limit 0] [-v]
//
// synth generates a reference experiment, matches it and reports whether the
// planted permutation was recovered. match loads two tables and writes the
// header alignment (CSV to stdout by default, XLSX when -out ends in .xlsx).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/katalvlaran/birkhoff/colmatch"
	"github.com/katalvlaran/birkhoff/dataset"
	"github.com/katalvlaran/birkhoff/matrix"
	"github.com/katalvlaran/birkhoff/synth"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "synth":
		err = runSynth(ctx, args[1:], stdout, stderr)
	case "match":
		err = runMatch(ctx, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "birkhoff: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "birkhoff: %v\n", err)
		return 1
	}

	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: birkhoff <synth|match> [flags]")
	fmt.Fprintln(w, "  synth  generate, match and check a planted instance")
	fmt.Fprintln(w, "  match  align the columns of two CSV/XLSX tables")
}

// solverFlags are shared by both subcommands.
type solverFlags struct {
	strategy  string
	timeLimit time.Duration
	maxNodes  int
	verbose   bool
}

func (s *solverFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.strategy, "strategy", "auto", "solver: auto, hungarian, bnb, brute")
	fs.DurationVar(&s.timeLimit, "time-limit", 0, "overall solve budget (0 = none)")
	fs.IntVar(&s.maxNodes, "max-nodes", 0, "branch-and-bound node budget (0 = unlimited)")
	fs.BoolVar(&s.verbose, "v", false, "debug logging")
}

// options turns the flags into colmatch options and a logger.
func (s *solverFlags) options(stderr io.Writer) ([]colmatch.Option, *slog.Logger, error) {
	if s.timeLimit < 0 {
		return nil, nil, colmatch.ErrBadTimeLimit
	}
	if s.maxNodes < 0 {
		return nil, nil, colmatch.ErrBadMaxNodes
	}
	st, err := colmatch.ParseStrategy(s.strategy)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelInfo
	if s.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return []colmatch.Option{
		colmatch.WithStrategy(st),
		colmatch.WithTimeLimit(s.timeLimit),
		colmatch.WithMaxNodes(s.maxNodes),
		colmatch.WithLogger(logger),
	}, logger, nil
}

// matchTolerant runs MatchColumns and accepts a budget stop that still
// produced a feasible permutation.
func matchTolerant(ctx context.Context, a, b *matrix.Dense, opts []colmatch.Option) (*colmatch.Result, error) {
	res, err := colmatch.MatchColumns(ctx, a, b, opts...)
	if err != nil && !(errors.Is(err, colmatch.ErrTimeLimit) && res != nil) {
		return nil, err
	}

	return res, nil
}

func runSynth(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		fs       = flag.NewFlagSet("synth", flag.ContinueOnError)
		cfg      = synth.DefaultConfig()
		solver   solverFlags
		printMax int
	)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "samples n")
	fs.IntVar(&cfg.Cols, "cols", cfg.Cols, "columns m")
	fs.Int64Var(&cfg.MaxValue, "max-value", cfg.MaxValue, "A entries in [0, max-value)")
	fs.Int64Var(&cfg.MaxNoise, "noise", cfg.MaxNoise, "noise entries in [0, noise)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.IntVar(&printMax, "print-max", 10, "print P and column sums when m <= print-max")
	solver.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, logger, err := solver.options(stderr)
	if err != nil {
		return err
	}

	inst, err := synth.Generate(cfg)
	if err != nil {
		return err
	}
	drift, err := synth.ColumnSumDrift(inst)
	if err != nil {
		return err
	}
	logger.Info("instance generated",
		"rows", cfg.Rows, "cols", cfg.Cols, "seed", cfg.Seed, "column_sum_drift", drift)

	res, err := matchTolerant(ctx, inst.A, inst.B, opts)
	if err != nil {
		return err
	}

	if cfg.Cols <= printMax {
		fmt.Fprintln(stdout, "P =")
		fmt.Fprint(stdout, res.P)
		sa, _ := matrix.ColSums(inst.A)
		sb, _ := matrix.ColSums(inst.B)
		fmt.Fprintf(stdout, "column sums A: %v\n", sa)
		fmt.Fprintf(stdout, "column sums B: %v\n", sb)
	}
	fmt.Fprintf(stdout, "objective: %d\n", res.Objective)
	fmt.Fprintf(stdout, "optimal:   %t\n", res.Optimal)
	fmt.Fprintf(stdout, "strategy:  %s\n", res.Strategy)
	fmt.Fprintf(stdout, "elapsed:   %s\n", res.Elapsed)
	if colmatch.Recovered(res, inst.Planted) {
		fmt.Fprintln(stdout, "recovered: yes")
		return nil
	}
	fmt.Fprintln(stdout, "recovered: no")

	return nil
}

func runMatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		fs       = flag.NewFlagSet("match", flag.ContinueOnError)
		solver   solverFlags
		refPath  string
		obsPath  string
		sheet    string
		outPath  string
		noHeader bool
	)
	fs.SetOutput(stderr)
	fs.StringVar(&refPath, "ref", "", "reference table (.csv, .tsv, .xlsx)")
	fs.StringVar(&obsPath, "obs", "", "observed table (.csv, .tsv, .xlsx)")
	fs.StringVar(&sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	fs.StringVar(&outPath, "out", "", "alignment output (.csv or .xlsx; default stdout CSV)")
	fs.BoolVar(&noHeader, "no-header", false, "tables have no header row")
	solver.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if refPath == "" || obsPath == "" {
		return errors.New("match: -ref and -obs are required")
	}
	opts, logger, err := solver.options(stderr)
	if err != nil {
		return err
	}

	load := dataset.DefaultOptions()
	load.HasHeader = !noHeader
	load.Sheet = sheet
	ref, err := dataset.Load(refPath, load)
	if err != nil {
		return err
	}
	obs, err := dataset.Load(obsPath, load)
	if err != nil {
		return err
	}
	logger.Debug("tables loaded",
		"ref", refPath, "obs", obsPath,
		"rows", ref.Data.Rows(), "cols", ref.Data.Cols())

	res, err := matchTolerant(ctx, ref.Data, obs.Data, opts)
	if err != nil {
		return err
	}
	pairs, err := dataset.Align(ref, obs, res.Perm)
	if err != nil {
		return err
	}

	switch {
	case outPath == "":
		return dataset.WriteAlignmentCSV(stdout, pairs)
	case strings.EqualFold(filepath.Ext(outPath), ".xlsx"):
		return dataset.WriteAlignmentXLSX(outPath, pairs)
	default:
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err = dataset.WriteAlignmentCSV(f, pairs); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
