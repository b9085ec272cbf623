package mol

import (
	"errors"
	"slices"

	"github.com/dominikbraun/graph"
)

// connectivity builds an undirected graph on atom ids. Self bonds are
// left out and repeated edges collapse to one.
func (m *Molecule) connectivity() (graph.Graph[int, int], error) {
	g := graph.New(graph.IntHash)
	for _, a := range m.atoms {
		if err := g.AddVertex(a.ID); err != nil {
			return nil, err
		}
	}
	for _, e := range m.edges {
		if e.A == e.B {
			continue
		}
		err := g.AddEdge(e.A, e.B)
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, err
		}
	}
	return g, nil
}

// byFileOrder sorts atom ids by where the atoms are in the molecule.
func (m *Molecule) byFileOrder(ids []int) {
	slices.SortFunc(ids, func(a, b int) int { return m.index[a] - m.index[b] })
}

// Neighbors returns the ids of atoms bonded to id, in file order.
func (m *Molecule) Neighbors(id int) ([]int, error) {
	if _, ok := m.index[id]; !ok {
		return nil, &BondRefError{Edge: -1, From: id, To: id, Missing: id}
	}
	g, err := m.connectivity()
	if err != nil {
		return nil, err
	}
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	ret := make([]int, 0, len(adj[id]))
	for k := range adj[id] {
		ret = append(ret, k)
	}
	m.byFileOrder(ret)
	return ret, nil
}

// Fragments splits the molecule into connected pieces. Each piece is
// a list of atom ids. Pieces come in the order of their first atom,
// and ids within a piece are in file order, so the answer does not
// depend on map iteration.
func (m *Molecule) Fragments() ([][]int, error) {
	g, err := m.connectivity()
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(m.atoms))
	var ret [][]int
	for _, a := range m.atoms {
		if seen[a.ID] {
			continue
		}
		var frag []int
		err := graph.BFS(g, a.ID, func(id int) bool {
			seen[id] = true
			frag = append(frag, id)
			return false
		})
		if err != nil {
			return nil, err
		}
		m.byFileOrder(frag)
		ret = append(ret, frag)
	}
	return ret, nil
}
