package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kochabx/keysort/app"
	"github.com/kochabx/keysort/bench"
	"github.com/kochabx/keysort/dataset"
	"github.com/kochabx/keysort/log"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every sort strategy at each input size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, withBinds(map[string]string{
				"bench.sizes":        "sizes",
				"bench.strategies":   "strategies",
				"bench.verify":       "verify",
				"bench.metrics_file": "metrics-file",
			}))
			if err != nil {
				return err
			}

			strategies := make([]bench.Strategy, 0, len(s.Bench.Strategies))
			for _, name := range s.Bench.Strategies {
				st, err := bench.ParseStrategy(name)
				if err != nil {
					return err
				}
				strategies = append(strategies, st)
			}

			metrics := bench.NewMetrics("keysort")
			var closers []app.Option
			if s.Bench.MetricsFile != "" {
				closers = append(closers, app.WithClose("metrics", func(context.Context) error {
					return metrics.WriteTextfile(s.Bench.MetricsFile)
				}, 0))
			}

			gen := dataset.New(nil)
			if s.Seed != 0 {
				gen = dataset.NewSeeded(s.Seed)
			}

			return run(cmd.Context(), s, "bench", func(ctx context.Context, logger *log.Logger) error {
				runner := bench.NewRunner(
					bench.WithGenerator(gen),
					bench.WithMetrics(metrics),
					bench.WithLogger(logger),
					bench.WithVerify(s.Bench.Verify),
					bench.WithStrategies(strategies...),
				)
				results, err := runner.Run(ctx, s.Bench.Sizes)
				printResults(cmd.OutOrStdout(), results)
				return err
			}, closers...)
		},
	}

	cmd.Flags().IntSlice("sizes", bench.DefaultSizes, "dataset sizes to benchmark")
	cmd.Flags().StringSlice("strategies", nil, "strategies to run (default all)")
	cmd.Flags().Bool("verify", true, "check strategy equivalence on each input before timing")
	cmd.Flags().String("metrics-file", "", "write results in prometheus text format to this file")
	return cmd
}

func printResults(w io.Writer, results []bench.Result) {
	if len(results) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "strategy\tsize\tns/op\tnet ns/op\tB/op\tallocs/op\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n",
			r.Strategy, r.Size, r.NsPerOp, bench.NetNsPerOp(results, r), r.BytesPerOp, r.AllocsPerOp)
	}
	tw.Flush()
}
