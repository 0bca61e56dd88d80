// Package graphview turns a raw relationship graph into a vis-network
// payload.
//
// A View fetches the graph once from a Source, keeps it in memory, and on
// every toggle change recomputes the visible subgraph (ComputeVisible), maps
// it to the vis-network schema (BuildNetwork) and hands the result to a
// Renderer. Each render builds a fresh Network and drops the previous one.
//
// Clicks resolve a node id to its detail page through domain.NodeRef.
package graphview
