// Package sdf reads the first molecule of an SDF / mol file in V2000
// layout.
//
// We read three blocks. The counts line is the first line containing
// "V2000". Its first two tokens are the number of atoms and bonds.
// Then come the atom lines (x, y, z, element) and the bond lines
// (from, to, order). Anything after the bond block is ignored, so
// properties, "M  END" and further molecules after "$$$$" do not
// matter. Atoms get ids 1, 2, 3... in the order they are in the file.
//
// The reader is a little state machine. Each state reads what it
// needs and returns the next state, or nil when we are finished or
// something broke.
package sdf

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/andrew-torda/molbond/pkg/geom"
	"github.com/andrew-torda/molbond/pkg/lines"
	"github.com/andrew-torda/molbond/pkg/mol"
)

// DefaultRadius is given to every atom from an sdf file. It is smaller
// than the pdb one.
const DefaultRadius = 0.3

const marker = "V2000"

// Minimum number of tokens on a line.
const (
	nCounts = 2
	nAtom   = 4
	nBond   = 3
)

// Bond is one line of the bond block. From and To count from 1.
type Bond struct {
	From, To int
	Order    int
	Line     int
}

// File has the blocks as they were read, before any checking of
// references.
type File struct {
	Title string
	Atoms []mol.Atom
	Bonds []Bond
}

type stateFn func(*parser) stateFn

type parser struct {
	s     *lines.Scanner
	nAtom int
	nBond int
	first string // first line, a possible title
	file  File
	err   error
}

// line gets the next line. At the end of input it sets an error,
// either the reader's or one saying what we were still waiting for.
func (p *parser) line(block string, left int) (string, bool) {
	if p.s.Scan() {
		return p.s.Text(), true
	}
	if p.readErr() {
		return "", false
	}
	p.err = &mol.RecordError{
		Line:   p.s.Line() + 1,
		Field:  -1,
		Reason: fmt.Sprintf("input ended in %s block, %d more lines expected", block, left),
	}
	return "", false
}

// readErr sets p.err if the reader failed.
func (p *parser) readErr() bool {
	if err := p.s.Err(); err != nil {
		p.err = fmt.Errorf("reading sdf after line %d: %w", p.s.Line(), err)
		return true
	}
	return false
}

func (p *parser) atoi(words []string, i int) (int, bool) {
	n, err := strconv.Atoi(words[i])
	if err != nil {
		p.err = &mol.RecordError{Line: p.s.Line(), Field: i, Token: words[i], Reason: "not an integer"}
		return 0, false
	}
	return n, true
}

func (p *parser) short(got, want int, block string) {
	p.err = &mol.RecordError{
		Line:   p.s.Line(),
		Field:  -1,
		Reason: fmt.Sprintf("%s line has %d fields, need at least %d", block, got, want),
	}
}

// header skips lines until the counts line.
func header(p *parser) stateFn {
	for {
		if !p.s.Scan() {
			if !p.readErr() {
				p.err = &mol.RecordError{Line: p.s.Line(), Field: -1, Reason: "no " + marker + " counts line"}
			}
			return nil
		}
		text := p.s.Text()
		if !strings.Contains(text, marker) {
			if p.s.Line() == 1 {
				p.first = strings.TrimSpace(text)
			}
			continue
		}
		words := strings.Fields(text)
		if len(words) < nCounts {
			p.short(len(words), nCounts, "counts")
			return nil
		}
		var ok bool
		if p.nAtom, ok = p.atoi(words, 0); !ok {
			return nil
		}
		if p.nBond, ok = p.atoi(words, 1); !ok {
			return nil
		}
		for i, c := range []int{p.nAtom, p.nBond} {
			if c < 0 {
				p.err = &mol.RecordError{Line: p.s.Line(), Field: i, Token: words[i], Reason: "negative count"}
				return nil
			}
		}
		if p.s.Line() > 1 {
			p.file.Title = p.first
		}
		return atoms
	}
}

// atoms reads the atom block.
func atoms(p *parser) stateFn {
	p.file.Atoms = make([]mol.Atom, 0, p.nAtom)
	for i := 0; i < p.nAtom; i++ {
		text, ok := p.line("atom", p.nAtom-i)
		if !ok {
			return nil
		}
		words := strings.Fields(text)
		if len(words) < nAtom {
			p.short(len(words), nAtom, "atom")
			return nil
		}
		var xyz [3]float64
		for j := range xyz {
			x, err := strconv.ParseFloat(words[j], 64)
			if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
				p.err = &mol.RecordError{Line: p.s.Line(), Field: j, Token: words[j], Reason: "not a coordinate"}
				return nil
			}
			xyz[j] = x
		}
		p.file.Atoms = append(p.file.Atoms, mol.Atom{
			ID:     i + 1,
			Name:   words[3],
			Radius: DefaultRadius,
			Pos:    geom.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]},
		})
	}
	return bonds
}

// bonds reads the bond block. A bond to an atom that is not in the
// atom block stops us straight away.
func bonds(p *parser) stateFn {
	p.file.Bonds = make([]Bond, 0, p.nBond)
	for i := 0; i < p.nBond; i++ {
		text, ok := p.line("bond", p.nBond-i)
		if !ok {
			return nil
		}
		words := strings.Fields(text)
		if len(words) < nBond {
			p.short(len(words), nBond, "bond")
			return nil
		}
		var v [nBond]int
		for j := range v {
			if v[j], ok = p.atoi(words, j); !ok {
				return nil
			}
		}
		b := Bond{From: v[0], To: v[1], Order: v[2], Line: p.s.Line()}
		for _, ndx := range []int{b.From, b.To} {
			if ndx < 1 || ndx > p.nAtom {
				p.err = fmt.Errorf("sdf bond at line %d: %w", p.s.Line(),
					&mol.BondRefError{Edge: i, From: b.From, To: b.To, Missing: ndx})
				return nil
			}
		}
		p.file.Bonds = append(p.file.Bonds, b)
	}
	return nil
}

// Scan reads the counts line, atom block and bond block from r.
func Scan(r io.Reader) (*File, error) {
	p := parser{s: lines.New(r)}
	for state := header; state != nil; {
		state = state(&p)
	}
	if p.err != nil {
		return nil, p.err
	}
	return &p.file, nil
}

// Molecule gives the checked molecule. Each bond line is one edge and
// keeps its order.
func (f *File) Molecule() (*mol.Molecule, error) {
	edges := make([]mol.Edge, len(f.Bonds))
	for i, b := range f.Bonds {
		edges[i] = mol.Edge{A: b.From, B: b.To, Order: b.Order}
	}
	return mol.New(f.Title, mol.SDF, f.Atoms, edges)
}

// ParseReader reads an sdf file and returns the molecule.
func ParseReader(r io.Reader) (*mol.Molecule, error) {
	f, err := Scan(r)
	if err != nil {
		return nil, err
	}
	return f.Molecule()
}

// Parse is ParseReader on a string.
func Parse(text string) (*mol.Molecule, error) {
	return ParseReader(strings.NewReader(text))
}
