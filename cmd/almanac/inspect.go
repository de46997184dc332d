// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/almanac/minimize"
)

func newTraceCmd(rf *rootFlags) *cobra.Command {
	var (
		from  string
		value int64
	)
	cmd := &cobra.Command{
		Use:   "trace FILE",
		Short: "Follow one value through the chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(rf)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("from") {
				from = cfg.From
			}
			_, reg, err := load(args[0], newLogger(cmd.ErrOrStderr(), cfg.Level()))
			if err != nil {
				return err
			}

			tr, err := reg.Trace(from, value)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d %s %s\n", tr.Final, tr.Category, tr.Path)

			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "seed", "category of the value")
	cmd.Flags().Int64Var(&value, "value", 0, "value to trace")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newRunsCmd(rf *rootFlags) *cobra.Command {
	var (
		from         string
		runKey       string
		start, count int64
	)
	cmd := &cobra.Command{
		Use:   "runs FILE",
		Short: "List the runs of [start, start+count)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(rf)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("from") {
				from = cfg.From
			}
			if !cmd.Flags().Changed("run-key") {
				runKey = cfg.RunKey
			}
			key, err := minimize.ParseRunKey(runKey)
			if err != nil {
				return err
			}
			_, reg, err := load(args[0], newLogger(cmd.ErrOrStderr(), cfg.Level()))
			if err != nil {
				return err
			}

			r := minimize.SeedRange{Start: start, Count: count}
			if err = r.Validate(); err != nil {
				return err
			}
			runs, err := minimize.Runs(cmd.Context(), reg, from, r.Start, r.End(), minimize.WithRunKey(key))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, run := range runs {
				if _, err = fmt.Fprintf(w, "[%d,%d) %d %s %s\n",
					run.Start, run.End, run.Final, run.Category, run.Path); err != nil {
					return err
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "seed", "category of the range")
	cmd.Flags().StringVar(&runKey, "run-key", "segments", "segments or path")
	cmd.Flags().Int64Var(&start, "start", 0, "first value of the range")
	cmd.Flags().Int64Var(&count, "count", 1, "number of values in the range")

	return cmd
}

func newChainCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chain FILE",
		Short: "Print the categories in chain order with their interval counts and routes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(rf)
			if err != nil {
				return err
			}
			_, reg, err := load(args[0], newLogger(cmd.ErrOrStderr(), cfg.Level()))
			if err != nil {
				return err
			}

			var b strings.Builder
			for _, cat := range reg.Categories() {
				e, ok := reg.Edge(cat)
				if !ok {
					fmt.Fprintf(&b, "%s (terminal)\n", cat)
					continue
				}
				fmt.Fprintf(&b, "%s -> %s (%d intervals)\n", cat, e.Next, e.Map.Len())
			}
			for _, src := range reg.Sources() {
				route, err := reg.Route(src)
				if err != nil {
					return err
				}
				fmt.Fprintf(&b, "route: %s\n", strings.Join(route, " -> "))
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())

			return err
		},
	}
}
