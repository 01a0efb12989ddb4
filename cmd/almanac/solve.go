package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-almanac/internal/config"
	"github.com/askiada/go-almanac/internal/loader"
	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/pipeline/measure"
	"github.com/askiada/go-almanac/pkg/solver"
)

type solveOptions struct {
	*rootOptions
	mode            string
	concurrency     int
	graph           string
	tolerateOverlap bool
	stream          bool
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	opts := &solveOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Report the smallest final value of the seeds",
		Long: `Translate the seeds of an almanac through all of its stages and report the smallest final
value. In points mode each seed is a value, in ranges mode seeds are read as (start, length) pairs.
Files ending in .yaml or .yml are read as YAML, anything else as text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "both", "Mode: points, ranges, both")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 1, "Goroutines per stage when streaming")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "Write the DOT graph of the streaming steps to this file")
	cmd.Flags().BoolVar(&opts.tolerateOverlap, "tolerate-overlap", false, "Keep the first of overlapping rules instead of failing")
	cmd.Flags().BoolVar(&opts.stream, "stream", false, "Run stages as concurrent pipeline steps")

	return cmd
}

func (o *solveOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = o.mode
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if flags.Changed("graph") {
		cfg.Graph = o.graph
	}
	if flags.Changed("tolerate-overlap") {
		cfg.TolerateOverlap = o.tolerateOverlap
	}
	if flags.Changed("stream") {
		cfg.Stream = o.stream
	}

	return cfg.Validate()
}

func runSolve(cmd *cobra.Command, args []string, opts *solveOptions) error {
	cfg, err := opts.loadConfig(cmd, args)
	if err != nil {
		return err
	}
	err = opts.apply(cmd, cfg)
	if err != nil {
		return err
	}
	logger := opts.logger(cmd, cfg)
	mode, err := solver.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	doc, err := loader.LoadFile(cfg.Input)
	if err != nil {
		return err
	}
	pipe, err := doc.Build(loader.TolerateOverlap(cfg.TolerateOverlap), loader.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("almanac loaded", "input", cfg.Input, "seeds", len(doc.Seeds), "stages", pipe.Len())

	var report solver.Report
	if cfg.Stream || cfg.Graph != "" {
		solverOpts := []solver.Option{solver.WithConcurrency(cfg.Concurrency), solver.WithLogger(logger)}
		if cfg.Graph != "" {
			solverOpts = append(solverOpts, solver.WithMeasure(measure.NewDefaultMeasure()), solver.WithGraph(cfg.Graph))
		}
		report, err = solver.New(pipe, solverOpts...).Solve(cmd.Context(), doc.Seeds, mode)
	} else {
		report, err = solveDirect(pipe, doc.Seeds, mode)
	}
	if err != nil {
		return err
	}

	s := newStyles(!opts.noColor)
	out := cmd.OutOrStdout()
	if report.Points != nil {
		s.result(out, "points", *report.Points)
	}
	if report.Ranges != nil {
		s.result(out, "ranges", *report.Ranges)
	}

	return nil
}

func solveDirect(pipe *almanac.Pipeline, seeds []int64, mode solver.Mode) (solver.Report, error) {
	engine := almanac.NewQueryEngine(pipe)
	report := solver.Report{}
	if mode == solver.ModePoints || mode == solver.ModeBoth {
		best, err := engine.MinFinalPoint(seeds)
		if err != nil {
			return solver.Report{}, err
		}
		report.Points = &best
	}
	if mode == solver.ModeRanges || mode == solver.ModeBoth {
		spans, err := almanac.SpansFromPairs(seeds)
		if err != nil {
			return solver.Report{}, errors.Wrap(err, "unable to read seed ranges")
		}
		best, err := engine.MinFinalValueOverRanges(spans)
		if err != nil {
			return solver.Report{}, err
		}
		report.Ranges = &best
	}

	return report, nil
}
