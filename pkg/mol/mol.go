// Package mol has the atoms and bonds that both file readers produce.
// A Molecule can only be made by New(), which checks that atom ids are
// unique and that every edge points at atoms we have. After that it
// does not change. The accessors hand out copies.
package mol

import (
	"math"
	"slices"

	"github.com/andrew-torda/molbond/pkg/element"
	"github.com/andrew-torda/molbond/pkg/geom"
)

// Format says which kind of file a molecule came from.
type Format byte

const (
	Unknown Format = iota
	PDB
	SDF
)

func (f Format) String() string {
	switch f {
	case PDB:
		return "pdb"
	case SDF:
		return "sdf"
	}
	return "unknown"
}

// Atom is one atom. Name is whatever the file called it. In a pdb
// file that is something like "C1", in an sdf file it is the element.
type Atom struct {
	ID     int
	Name   string
	Radius float64
	Pos    geom.Vec3
}

// Symbol is the element symbol we get from the atom name.
func (a Atom) Symbol() string { return element.Symbol(a.Name) }

// Edge joins atoms A and B, given by id. Order is the bond order from
// the file, or 0 if the file does not say.
type Edge struct {
	A, B  int
	Order int
}

// Molecule is a checked set of atoms and edges in file order.
type Molecule struct {
	title  string
	format Format
	atoms  []Atom
	edges  []Edge
	index  map[int]int // atom id to position in atoms
}

// New checks atoms and edges and builds a Molecule. Both slices are
// copied. We return ErrEmptyInput if there are no atoms, a
// *DuplicateAtomError if an id appears twice and a *BondRefError for
// the first edge that refers to an atom we do not have.
func New(title string, format Format, atoms []Atom, edges []Edge) (*Molecule, error) {
	if len(atoms) == 0 {
		return nil, ErrEmptyInput
	}
	m := &Molecule{
		title:  title,
		format: format,
		atoms:  slices.Clone(atoms),
		edges:  slices.Clone(edges),
		index:  make(map[int]int, len(atoms)),
	}
	for i, a := range m.atoms {
		if _, ok := m.index[a.ID]; ok {
			return nil, &DuplicateAtomError{ID: a.ID}
		}
		m.index[a.ID] = i
	}
	for i, e := range m.edges {
		for _, id := range [2]int{e.A, e.B} {
			if _, ok := m.index[id]; !ok {
				return nil, &BondRefError{Edge: i, From: e.A, To: e.B, Missing: id}
			}
		}
	}
	return m, nil
}

// Title is the name from the file, if there was one.
func (m *Molecule) Title() string { return m.title }

// Format is the kind of file we were read from.
func (m *Molecule) Format() Format { return m.format }

// Len is the number of atoms.
func (m *Molecule) Len() int { return len(m.atoms) }

// NEdge is the number of edges.
func (m *Molecule) NEdge() int { return len(m.edges) }

// Atoms returns a copy of the atoms in file order.
func (m *Molecule) Atoms() []Atom { return slices.Clone(m.atoms) }

// Edges returns a copy of the edges in file order.
func (m *Molecule) Edges() []Edge { return slices.Clone(m.edges) }

// Atom finds an atom by id.
func (m *Molecule) Atom(id int) (Atom, bool) {
	i, ok := m.index[id]
	if !ok {
		return Atom{}, false
	}
	return m.atoms[i], true
}

// Endpoints returns the two atoms of an edge. ok is false if either is
// missing, which cannot happen for an edge that came from Edges().
func (m *Molecule) Endpoints(e Edge) (a, b Atom, ok bool) {
	var okA, okB bool
	a, okA = m.Atom(e.A)
	b, okB = m.Atom(e.B)
	return a, b, okA && okB
}

// UniqueEdges drops repeats of an edge. PDB files usually list each
// bond twice, once in each direction. An edge and its reverse are the
// same. The first one seen is kept.
func (m *Molecule) UniqueEdges() []Edge {
	type pair struct{ a, b int }
	seen := make(map[pair]bool, len(m.edges))
	ret := make([]Edge, 0, len(m.edges))
	for _, e := range m.edges {
		p := pair{e.A, e.B}
		if p.a > p.b {
			p.a, p.b = p.b, p.a
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		ret = append(ret, e)
	}
	return ret
}

// Bounds returns the corners of the box around all atom centres.
func (m *Molecule) Bounds() (lo, hi geom.Vec3) {
	lo = geom.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = geom.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, a := range m.atoms {
		p := a.Pos
		lo = geom.Vec3{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = geom.Vec3{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return lo, hi
}
