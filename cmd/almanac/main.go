// SPDX-License-Identifier: MIT
// Command almanac solves and inspects almanac files.
//
//	almanac solve input.txt --mode ranges
//	almanac trace input.txt --value 79
//	almanac runs input.txt --start 79 --count 14
//	almanac chain input.txt
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/almanac"
	"github.com/katalvlaran/almanac/chain"
	"github.com/katalvlaran/almanac/config"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	root := &cobra.Command{
		Use:           "almanac",
		Short:         "Chained interval remapping over almanac files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rf.configPath, "config", "", "YAML run configuration")
	root.PersistentFlags().StringVar(&rf.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newSolveCmd(rf),
		newTraceCmd(rf),
		newRunsCmd(rf),
		newChainCmd(rf),
	)

	return root
}

// newLogger writes text records to w at the named level.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// settings loads the run configuration and applies --log-level.
func settings(rf *rootFlags) (config.RunConfig, error) {
	cfg, err := config.Load(rf.configPath)
	if err != nil {
		return cfg, err
	}
	if rf.logLevel != "" {
		cfg.LogLevel = rf.logLevel
	}

	return cfg, cfg.Validate()
}

// load parses path and builds its registry.
func load(path string, logger *slog.Logger) (*almanac.Almanac, *chain.Registry, error) {
	a, err := almanac.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	reg, err := a.Registry(chain.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("almanac loaded",
		slog.String("file", path),
		slog.Int("seeds", len(a.Seeds)),
		slog.Int("edges", reg.EdgeCount()))

	return a, reg, nil
}
