package graph

import "github.com/chuckjewell/roam-code/internal/model"

// Build constructs the symbol graph from the store's symbol and edge
// relations. An empty input yields a valid zero-node graph; every
// downstream algorithm treats that as a degenerate case producing empty
// results.
func Build(symbols []model.Symbol, edges []model.Edge) *Graph {
	g := New()
	for _, sym := range symbols {
		g.AddNode(Node{ID: sym.ID, Name: sym.Name, Kind: sym.Kind, FileID: sym.FileID})
	}
	for _, e := range edges {
		g.AddEdge(e.SourceID, e.TargetID, e.Kind)
	}
	return g
}

// Store is the minimal read surface needed to build a graph; tests stub
// it instead of opening a database.
type Store interface {
	Symbols() ([]model.Symbol, error)
	Edges() ([]model.Edge, error)
}

// BuildFromStore builds the symbol graph from a relationship store.
func BuildFromStore(store Store) (*Graph, error) {
	symbols, err := store.Symbols()
	if err != nil {
		return nil, err
	}
	edges, err := store.Edges()
	if err != nil {
		return nil, err
	}
	return Build(symbols, edges), nil
}
