// SPDX-License-Identifier: MIT
// Package almanac reads almanac files: a seed line followed by blocks of
// "<from>-to-<to> map:" rules, each rule a "dst src length" triple.
//
// What is here?
//
//	almanac/     the text format: ParseKeyValues, Parse, Almanac
//	interval/    OffsetMap (last-wins interval remapping) and its compiled Index
//	chain/       Registry of category transitions and Trace
//	search/      FirstFalse/FirstTrue over monotone predicates
//	minimize/    run enumeration and range minimization (Runs, Range, Solve)
//	core/        directed category graph backing the registry
//	dfs/         DFS, cycle detection, topological order
//	metrics/     Prometheus observer for Solve
//	config/      YAML run configuration
//	cmd/almanac  command-line front end
//
// Quick example:
//
//	a, _ := almanac.Parse(strings.NewReader(text))
//	reg, _ := a.Registry()
//	ranges, _ := a.SeedRanges()
//	out, _ := minimize.Solve(ctx, reg, "seed", ranges, minimize.WithTerminal("location"))
//	fmt.Println(out.Min)
package almanac
