// Package graph holds the in-memory directed symbol graph every
// analysis run builds fresh from the relationship store. The graph is
// owned by the run that built it and is never shared across runs.
package graph

import "sort"

// Node carries the symbol attributes downstream algorithms need.
type Node struct {
	ID     int64
	Name   string
	Kind   string
	FileID int64
}

// Edge is a labeled outgoing edge. Parallel edges of different kinds
// between the same pair are kept as distinct entries.
type Edge struct {
	From int64
	To   int64
	Kind string
}

// Graph is a directed graph keyed by symbol id with labeled edges and
// both forward and reverse adjacency.
type Graph struct {
	nodes map[int64]Node
	out   map[int64][]Edge
	in    map[int64][]Edge
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int64]Node),
		out:   make(map[int64][]Edge),
		in:    make(map[int64][]Edge),
	}
}

// AddNode inserts or updates a node.
func (g *Graph) AddNode(n Node) {
	g.nodes[n.ID] = n
}

// AddEdge inserts a labeled edge, creating placeholder nodes for unknown
// endpoints so the graph stays internally consistent.
func (g *Graph) AddEdge(from, to int64, kind string) {
	if _, ok := g.nodes[from]; !ok {
		g.nodes[from] = Node{ID: from}
	}
	if _, ok := g.nodes[to]; !ok {
		g.nodes[to] = Node{ID: to}
	}
	e := Edge{From: from, To: to, Kind: kind}
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)
	g.edges++
}

// Len returns the node count.
func (g *Graph) Len() int { return len(g.nodes) }

// NumEdges returns the labeled edge count (parallel kinds counted).
func (g *Graph) NumEdges() int { return g.edges }

// Node returns the node for id and whether it exists.
func (g *Graph) Node(id int64) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether the node exists.
func (g *Graph) Has(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns all node ids in ascending order. Algorithms iterate
// this for deterministic output.
func (g *Graph) NodeIDs() []int64 {
	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OutEdges returns the labeled outgoing edges of a node.
func (g *Graph) OutEdges(id int64) []Edge { return g.out[id] }

// InEdges returns the labeled incoming edges of a node.
func (g *Graph) InEdges(id int64) []Edge { return g.in[id] }

// Successors returns distinct forward neighbors in ascending order
// (simple-graph view: any edge kind counts once).
func (g *Graph) Successors(id int64) []int64 {
	return distinctTargets(g.out[id], func(e Edge) int64 { return e.To })
}

// Predecessors returns distinct reverse neighbors in ascending order.
func (g *Graph) Predecessors(id int64) []int64 {
	return distinctTargets(g.in[id], func(e Edge) int64 { return e.From })
}

// SuccessorsByKind returns distinct forward neighbors reachable through
// any of the given edge kinds, ascending. An empty kind set means all.
func (g *Graph) SuccessorsByKind(id int64, kinds map[string]bool) []int64 {
	if len(kinds) == 0 {
		return g.Successors(id)
	}
	var filtered []Edge
	for _, e := range g.out[id] {
		if kinds[e.Kind] {
			filtered = append(filtered, e)
		}
	}
	return distinctTargets(filtered, func(e Edge) int64 { return e.To })
}

// PredecessorsByKind returns distinct reverse neighbors through any of
// the given edge kinds, ascending. An empty kind set means all.
func (g *Graph) PredecessorsByKind(id int64, kinds map[string]bool) []int64 {
	if len(kinds) == 0 {
		return g.Predecessors(id)
	}
	var filtered []Edge
	for _, e := range g.in[id] {
		if kinds[e.Kind] {
			filtered = append(filtered, e)
		}
	}
	return distinctTargets(filtered, func(e Edge) int64 { return e.From })
}

// Degree returns the simple-view degree (distinct in + out neighbors).
func (g *Graph) Degree(id int64) int {
	return len(g.Successors(id)) + len(g.Predecessors(id))
}

// EdgePairs returns every distinct (from, to) pair once, ordered by
// source then target. Parallel kinds collapse to one pair.
func (g *Graph) EdgePairs() [][2]int64 {
	var pairs [][2]int64
	for _, from := range g.NodeIDs() {
		for _, to := range g.Successors(from) {
			pairs = append(pairs, [2]int64{from, to})
		}
	}
	return pairs
}

func distinctTargets(edges []Edge, key func(Edge) int64) []int64 {
	if len(edges) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(edges))
	out := make([]int64, 0, len(edges))
	for _, e := range edges {
		id := key(e)
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
