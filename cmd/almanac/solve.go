// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/almanac/config"
	"github.com/katalvlaran/almanac/metrics"
	"github.com/katalvlaran/almanac/minimize"
)

func newSolveCmd(rf *rootFlags) *cobra.Command {
	var flags config.RunConfig

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Print the minimum terminal value reachable from the seeds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// 1) Configuration: file, then explicitly set flags.
			cfg, err := settings(rf)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("from") {
				cfg.From = flags.From
			}
			if fs.Changed("to") {
				cfg.To = flags.To
			}
			if fs.Changed("mode") {
				cfg.Mode = flags.Mode
			}
			if fs.Changed("workers") {
				cfg.Workers = flags.Workers
			}
			if fs.Changed("run-key") {
				cfg.RunKey = flags.RunKey
			}
			if fs.Changed("metrics-file") {
				cfg.MetricsFile = flags.MetricsFile
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Level())

			// 2) Input.
			a, reg, err := load(args[0], logger)
			if err != nil {
				return err
			}
			if !reg.Reaches(cfg.From, cfg.To) {
				logger.Warn("terminal not reachable from source",
					slog.String("from", cfg.From), slog.String("to", cfg.To))
			}

			var ranges []minimize.SeedRange
			if cfg.Mode == config.ModeSeeds {
				ranges = a.SeedValues()
			} else if ranges, err = a.SeedRanges(); err != nil {
				return err
			}
			key, err := minimize.ParseRunKey(cfg.RunKey)
			if err != nil {
				return err
			}

			// 3) Solve.
			rec := metrics.NewRecorder()
			began := time.Now()
			out, err := minimize.Solve(cmd.Context(), reg, cfg.From, ranges,
				minimize.WithTerminal(cfg.To),
				minimize.WithRunKey(key),
				minimize.WithWorkers(cfg.Workers),
				minimize.WithObserver(rec),
				minimize.WithLogger(logger))
			if err != nil {
				return err
			}
			logger.Info("solved",
				slog.String("mode", cfg.Mode),
				slog.Int("ranges", len(ranges)),
				slog.Int64("min", out.Min),
				slog.Int64("arg_min", out.ArgMin),
				slog.Int("runs", out.Runs),
				slog.Int("skipped", out.Skipped),
				slog.Duration("elapsed", time.Since(began)))

			// 4) Metrics.
			if cfg.MetricsFile != "" {
				if err = rec.WriteTextfile(cfg.MetricsFile); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Min)

			return err
		},
	}

	def := config.Default()
	cmd.Flags().StringVar(&flags.From, "from", def.From, "source category of the seeds")
	cmd.Flags().StringVar(&flags.To, "to", def.To, "terminal category")
	cmd.Flags().StringVar(&flags.Mode, "mode", def.Mode, "ranges (seed pairs) or seeds (single values)")
	cmd.Flags().IntVar(&flags.Workers, "workers", def.Workers, "ranges solved at once, 0 for unbounded")
	cmd.Flags().StringVar(&flags.RunKey, "run-key", def.RunKey, "segments or path")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}
