// Package bond turns the edges of a molecule into cylinders a renderer
// can draw.
//
// Every bond is split in two at its midpoint. The half next to atom A
// gets A's colour and the half next to B gets B's, so one bond between
// a carbon and an oxygen is half grey and half red. Each half comes
// with the transform that takes a unit cylinder along +Y onto it.
//
// Nothing here can fail on a molecule made by mol.New. Atoms with
// names we do not recognise just get the default colour.
package bond

import (
	"image/color"

	"github.com/andrew-torda/molbond/pkg/element"
	"github.com/andrew-torda/molbond/pkg/geom"
	"github.com/andrew-torda/molbond/pkg/mol"
)

// DefaultBondRadius is the radius of bond cylinders if Options does
// not say otherwise.
const DefaultBondRadius = 0.2

// Options control how a scene is built.
//
// Dedup drops repeated bonds, which pdb files often have since CONECT
// records are usually written for both atoms. CovalentRadii sizes the
// spheres by element instead of using the radius the parser gave.
type Options struct {
	BondRadius    float64
	Dedup         bool
	CovalentRadii bool
}

// DefaultOptions are what you get from the command line without flags.
func DefaultOptions() Options { return Options{BondRadius: DefaultBondRadius} }

func (o Options) radius() float64 {
	if o.BondRadius <= 0 {
		return DefaultBondRadius
	}
	return o.BondRadius
}

// Segment is one half of a bond.
// Edge is the index of the bond in the list we worked from and Atom is
// the id of the atom whose colour it carries.
type Segment struct {
	Start, End geom.Vec3
	Radius     float64
	Color      color.RGBA
	Edge       int
	Atom       int
	Transform  geom.Transform
}

// Sphere is an atom as it will be drawn.
type Sphere struct {
	Atom   int
	Name   string
	Symbol string
	Center geom.Vec3
	Radius float64
	Color  color.RGBA
}

// Scene is everything needed to draw a molecule.
type Scene struct {
	Title    string
	Spheres  []Sphere
	Segments []Segment
}

func colorOf(a mol.Atom) color.RGBA { return element.ColorFor(a.Symbol()) }

func half(start, end geom.Vec3, r float64, a mol.Atom, edge int) Segment {
	return Segment{
		Start:     start,
		End:       end,
		Radius:    r,
		Color:     colorOf(a),
		Edge:      edge,
		Atom:      a.ID,
		Transform: geom.Align(start, end),
	}
}

// Split returns two segments per bond, in bond order. Segment 2i runs
// from atom A to the midpoint and 2i+1 from the midpoint to atom B.
func Split(m *mol.Molecule, opts Options) []Segment {
	edges := m.Edges()
	if opts.Dedup {
		edges = m.UniqueEdges()
	}
	r := opts.radius()
	segs := make([]Segment, 0, 2*len(edges))
	for i, e := range edges {
		a, b, ok := m.Endpoints(e)
		if !ok { // mol.New does not let this happen
			continue
		}
		mid := geom.Midpoint(a.Pos, b.Pos)
		segs = append(segs, half(a.Pos, mid, r, a, i), half(mid, b.Pos, r, b, i))
	}
	return segs
}

// Spheres gives one sphere per atom, in file order.
func Spheres(m *mol.Molecule, opts Options) []Sphere {
	atoms := m.Atoms()
	s := make([]Sphere, len(atoms))
	for i, a := range atoms {
		sym := a.Symbol()
		r := a.Radius
		if opts.CovalentRadii {
			r = element.RadiusFor(sym)
		}
		s[i] = Sphere{
			Atom:   a.ID,
			Name:   a.Name,
			Symbol: sym,
			Center: a.Pos,
			Radius: r,
			Color:  element.ColorFor(sym),
		}
	}
	return s
}

// Build makes the whole scene.
func Build(m *mol.Molecule, opts Options) Scene {
	return Scene{
		Title:    m.Title(),
		Spheres:  Spheres(m, opts),
		Segments: Split(m, opts),
	}
}
