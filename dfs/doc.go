// SPDX-License-Identifier: MIT
// Package dfs implements depth-first search, cycle detection and topological
// sort on a directed core.Graph.
//
// What:
//
//   - DFS: explores successors as deep as possible before backtracking.
//     Supports pre-/post-order hooks, cancellation and depth limiting.
//   - Reachable: DFS-backed reachability between two categories.
//   - DetectCycles: enumerates back-edge cycles with White/Gray/Black
//     coloring, canonical rotation and deduplication.
//   - TopologicalSort: linear order of a DAG, ErrCycleDetected otherwise.
//
// Why:
//
//   - A remapping chain is only meaningful when it terminates; cycle
//     detection turns a silent infinite trace into a build-time error.
//   - Topological order lists the categories of a chain from source to
//     terminal for reporting.
//
// Complexity:
//
//   - DFS, Reachable, TopologicalSort: Time O(V+E), Memory O(V)
//   - DetectCycles:                    Time O(V+E+C·L), Memory O(V+L_max)
package dfs
