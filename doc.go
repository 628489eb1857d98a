// Package astar provides a generic A* best-first search over caller-built
// state graphs.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// A graph is any set of Node values linked by Edge values; StaticNode is a
// ready-made node with an appendable edge list. The frontier holds immutable
// Path values ranked by cost plus the heuristic of their last node.
//
// No visited set is kept unless WithClosedSet is given, so on cyclic graphs
// the wall-clock deadline (DefaultTimeout, see WithTimeout) is what ends a
// search that cannot reach its goal. Every failure is reported both as a
// Result.Status and as an *Error.
package astar
