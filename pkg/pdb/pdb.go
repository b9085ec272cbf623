// Package pdb reads the HETATM and CONECT records of a PDB style file
// and turns them into a mol.Molecule.
//
// This is not a full PDB reader. Lines are split on white space, not
// by column, which is how small ligand files from places like DrugBank
// are laid out. For HETATM we use
//
//	token 1        atom id
//	token 2        atom name, kept as it is ("C1", not "C")
//	token 5, 6, 7  x, y, z
//
// For CONECT, token 1 is the atom and everything after it is a list
// of atoms it is bonded to. Every other line is ignored.
//
// Any number we cannot read is an error. We do not quietly put a zero
// in its place.
package pdb

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

// DefaultRadius is given to every atom from a pdb file.
const DefaultRadius = 0.5

const (
	hetatm = "HETATM"
	conect = "CONECT"
	compnd = "COMPND"
)

// Minimum number of tokens on a line.
const (
	nHetatm = 8
	nConect = 2
)

// Conect is one CONECT record. One record can bond an atom to several
// others. Line is where it was in the file.
type Conect struct {
	From int
	To   []int
	Line int
}

// File is what we found in a file before checking that the bonds
// make sense.
type File struct {
	Title   string
	Atoms   []mol.Atom
	Conects []Conect
}

// Scan reads records from r. It stops at the first line it cannot
// read and returns a *mol.RecordError saying where. An atom id seen
// before gives a *mol.DuplicateAtomError. If the reader fails, that
// error is returned, wrapped, and no part of a line is looked at.
func Scan(r io.Reader) (*File, error) {
	s := lines.New(r)
	f := new(File)
	seen := make(map[int]int) // atom id to line number
	for s.Scan() {
		words := strings.Fields(s.Text())
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case hetatm:
			a, err := atomRec(words, s.Line())
			if err != nil {
				return nil, err
			}
			if _, ok := seen[a.ID]; ok {
				return nil, &mol.DuplicateAtomError{ID: a.ID, Line: s.Line()}
			}
			seen[a.ID] = s.Line()
			f.Atoms = append(f.Atoms, a)
		case conect:
			c, err := conectRec(words, s.Line())
			if err != nil {
				return nil, err
			}
			f.Conects = append(f.Conects, c)
		case compnd:
			if f.Title == "" && len(words) > 1 {
				f.Title = strings.Join(words[1:], " ")
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading pdb after line %d: %w", s.Line(), err)
	}
	return f, nil
}

// short is the error for a line without enough tokens.
func short(line, got, want int, rec string) error {
	return &mol.RecordError{
		Line:   line,
		Field:  -1,
		Reason: fmt.Sprintf("%s record has %d fields, need at least %d", rec, got, want),
	}
}

func atoi(words []string, i, line int) (int, error) {
	n, err := strconv.Atoi(words[i])
	if err != nil {
		return 0, &mol.RecordError{Line: line, Field: i, Token: words[i], Reason: "not an integer"}
	}
	return n, nil
}

func atof(words []string, i, line int) (float64, error) {
	x, err := strconv.ParseFloat(words[i], 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &mol.RecordError{Line: line, Field: i, Token: words[i], Reason: "not a coordinate"}
	}
	return x, nil
}

// atomRec reads a HETATM line.
func atomRec(words []string, line int) (mol.Atom, error) {
	if len(words) < nHetatm {
		return mol.Atom{}, short(line, len(words), nHetatm, hetatm)
	}
	id, err := atoi(words, 1, line)
	if err != nil {
		return mol.Atom{}, err
	}
	var xyz [3]float64
	for i := range xyz {
		if xyz[i], err = atof(words, 5+i, line); err != nil {
			return mol.Atom{}, err
		}
	}
	return mol.Atom{
		ID:     id,
		Name:   words[2],
		Radius: DefaultRadius,
		Pos:    geom.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]},
	}, nil
}

// conectRec reads a CONECT line. Each partner is checked on its own.
func conectRec(words []string, line int) (Conect, error) {
	if len(words) < nConect {
		return Conect{}, short(line, len(words), nConect, conect)
	}
	from, err := atoi(words, 1, line)
	if err != nil {
		return Conect{}, err
	}
	c := Conect{From: from, To: make([]int, 0, len(words)-2), Line: line}
	for i := 2; i < len(words); i++ {
		to, err := atoi(words, i, line)
		if err != nil {
			return Conect{}, err
		}
		c.To = append(c.To, to)
	}
	return c, nil
}

// Molecule turns the records into a checked molecule. Each partner in
// a CONECT record gives one edge, in the order they were in the file.
// A CONECT that mentions an atom we never saw in a HETATM line gives a
// *mol.BondRefError.
func (f *File) Molecule() (*mol.Molecule, error) {
	if len(f.Atoms) == 0 {
		return nil, mol.ErrEmptyInput
	}
	ids := make(map[int]bool, len(f.Atoms))
	for _, a := range f.Atoms {
		ids[a.ID] = true
	}
	var edges []mol.Edge
	for _, c := range f.Conects {
		if !ids[c.From] {
			to := c.From
			if len(c.To) > 0 {
				to = c.To[0]
			}
			return nil, fmt.Errorf("CONECT at line %d: %w", c.Line,
				&mol.BondRefError{Edge: len(edges), From: c.From, To: to, Missing: c.From})
		}
		for _, to := range c.To {
			if !ids[to] {
				return nil, fmt.Errorf("CONECT at line %d: %w", c.Line,
					&mol.BondRefError{Edge: len(edges), From: c.From, To: to, Missing: to})
			}
			edges = append(edges, mol.Edge{A: c.From, B: to})
		}
	}
	return mol.New(f.Title, mol.PDB, f.Atoms, edges)
}

// ParseReader reads a whole pdb file and returns the molecule.
func ParseReader(r io.Reader) (*mol.Molecule, error) {
	f, err := Scan(r)
	if err != nil {
		return nil, err
	}
	return f.Molecule()
}

// Parse is ParseReader for text we already have.
func Parse(text string) (*mol.Molecule, error) {
	return ParseReader(strings.NewReader(text))
}
