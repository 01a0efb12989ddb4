package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/askiada/go-almanac/internal/loader"
)

type traceOptions struct {
	*rootOptions
	seeds           []int64
	tolerateOverlap bool
}

func newTraceCmd(root *rootOptions) *cobra.Command {
	opts := &traceOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "trace [file]",
		Short: "Show the value of seeds after every stage",
		Long:  "Translate seeds one stage at a time and print every intermediate value. Without --seed, the seeds of the document are traced.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, args, opts)
		},
	}

	cmd.Flags().Int64SliceVar(&opts.seeds, "seed", nil, "Seed to trace, may be repeated")
	cmd.Flags().BoolVar(&opts.tolerateOverlap, "tolerate-overlap", false, "Keep the first of overlapping rules instead of failing")

	return cmd
}

func runTrace(cmd *cobra.Command, args []string, opts *traceOptions) error {
	cfg, err := opts.loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tolerate-overlap") {
		cfg.TolerateOverlap = opts.tolerateOverlap
	}
	err = cfg.Validate()
	if err != nil {
		return err
	}
	logger := opts.logger(cmd, cfg)

	doc, err := loader.LoadFile(cfg.Input)
	if err != nil {
		return err
	}
	pipe, err := doc.Build(loader.TolerateOverlap(cfg.TolerateOverlap), loader.WithLogger(logger))
	if err != nil {
		return err
	}

	seeds := opts.seeds
	if len(seeds) == 0 {
		seeds = doc.Seeds
	}

	s := newStyles(!opts.noColor)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprint(w, s.label.Sprint("seed"))
	for _, stage := range pipe.Stages() {
		fmt.Fprintf(w, "\t%s", s.stage.Sprint(stage.Name()))
	}
	fmt.Fprintln(w)

	for _, seed := range seeds {
		for idx, value := range pipe.Trace(seed) {
			if idx > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, value)
		}
		fmt.Fprintln(w)
	}

	return nil
}
