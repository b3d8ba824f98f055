// Package testutil provides testing utilities for traversal code.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random graphs and computing
// reference traversal results.
//
// # Random Graph Generation
//
//	rng := testutil.NewRNG(seed)
//	adj := rng.RandomGraph(1000, 3000) // directed adjacency lists
//	adj = rng.ClusteredGraph(4, 250, 600) // disjoint clusters, symmetric
//
// # Ground Truth
//
//	want := testutil.ReachableSet(adj, []uint32{0})
//	hops := testutil.HopDistances(adj, 0)
package testutil
