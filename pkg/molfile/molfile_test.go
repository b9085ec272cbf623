package molfile_test

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/molbond/pkg/mol"
	. "github.com/andrew-torda/molbond/pkg/molfile"
	"github.com/andrew-torda/molbond/pkg/resource"
)

func TestFormatFromName(t *testing.T) {
	var tests = []struct {
		name string
		f    mol.Format
		ok   bool
	}{
		{"1abc.pdb", mol.PDB, true},
		{"/a/b/1ABC.PDB.gz", mol.PDB, true},
		{"pdb1abc.ent.gz", mol.PDB, true},
		{"ethanol.sdf", mol.SDF, true},
		{"x.MOL", mol.SDF, true},
		{"dir.pdb/ethanol", mol.Unknown, false},
		{"readme.txt", mol.Unknown, false},
		{"noext", mol.Unknown, false},
	}
	for _, tt := range tests {
		if f, ok := FormatFromName(tt.name); f != tt.f || ok != tt.ok {
			t.Errorf("%s gave %v %v", tt.name, f, ok)
		}
	}
}

func TestSniff(t *testing.T) {
	var tests = []struct {
		s   string
		f   mol.Format
		err error
	}{
		{"HEADER    LIGAND\n", mol.PDB, nil},
		{"\n\nHETATM 1 C1 LIG A 1 2 3\n", mol.PDB, nil},
		{"REMARK\n", mol.PDB, nil},
		{"name\n\n\n  1  0  0  0  0  0  0  0  0  0999 V2000\n", mol.SDF, nil},
		{"data_1ABC\nloop_\n", mol.Unknown, mol.ErrUnknownFormat},
		{"", mol.Unknown, mol.ErrUnknownFormat},
		{" HETATM\n", mol.Unknown, mol.ErrUnknownFormat},
	}
	for _, tt := range tests {
		f, err := Sniff([]byte(tt.s))
		if f != tt.f || !errors.Is(err, tt.err) {
			t.Errorf("%q gave %v %v", tt.s, f, err)
		}
	}
}

func TestParseBundled(t *testing.T) {
	b := resource.DefaultBundle()
	for _, ext := range []string{"pdb", "sdf"} {
		data, err := b.Open("ethanol", ext)
		if err != nil {
			t.Fatal(err)
		}
		// once with the name, once without so we have to sniff
		for _, name := range []string{"ethanol." + ext, "ethanol"} {
			m, err := Parse(name, data)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if m.Len() != 9 || len(m.UniqueEdges()) != 8 {
				t.Errorf("%s: %d atoms %d bonds", name, m.Len(), len(m.UniqueEdges()))
			}
			if m.Format().String() != ext {
				t.Errorf("%s: format %v", name, m.Format())
			}
		}
	}
}

func TestParseGzipped(t *testing.T) {
	data, err := resource.DefaultBundle().Open("ethanol", "sdf")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(data)
	w.Close()
	m, err := Parse("ethanol.sdf.gz", buf.Bytes())
	if err != nil || m.Len() != 9 {
		t.Errorf("got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("x.pdb", []byte("  \n")); !errors.Is(err, mol.ErrEmptyInput) {
		t.Errorf("blank file gave %v", err)
	}
	if _, err := Parse("x", []byte("hello\n")); !errors.Is(err, mol.ErrUnknownFormat) {
		t.Errorf("unknown gave %v", err)
	}
	_, err := Parse("x.pdb", []byte("HETATM 1 C1 LIG A abc 2 3\n"))
	var rErr *mol.RecordError
	if !errors.As(err, &rErr) || rErr.Field != 5 {
		t.Errorf("bad pdb gave %v", err)
	}
	if _, err := ParseAs(mol.Unknown, nil); !errors.Is(err, mol.ErrUnknownFormat) {
		t.Errorf("ParseAs unknown gave %v", err)
	}
}

func gz(data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

func TestParseFile(t *testing.T) {
	b := resource.DefaultBundle()
	pdbData, _ := b.Open("ethanol", "pdb")
	sdfData, _ := b.Open("ethanol", "sdf")
	dir := t.TempDir()
	files := map[string][]byte{
		"eth.pdb":    pdbData,
		"eth.sdf.gz": gz(sdfData),
		"eth.pdb.gz": gz(pdbData),
		"eth":        sdfData,     // no hint in the name
		"eth.gz":     gz(pdbData), // nor here
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		m, err := ParseFile(path)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if m.Len() != 9 || len(m.UniqueEdges()) != 8 {
			t.Errorf("%s: %d atoms %d bonds", name, m.Len(), len(m.UniqueEdges()))
		}
	}
}

func TestParseFileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	if _, err := ParseFile(filepath.Join(dir, "none.sdf")); !errors.Is(err, mol.ErrResourceNotFound) {
		t.Errorf("missing file gave %v", err)
	}
	for _, name := range []string{"empty.sdf", "empty.pdb"} {
		if _, err := ParseFile(write(name, []byte(" \n\n"))); !errors.Is(err, mol.ErrEmptyInput) {
			t.Errorf("%s gave %v", name, err)
		}
	}
	if _, err := ParseFile(write("bad.sdf", []byte("title\n"))); !errors.Is(err, mol.ErrMalformedRecord) {
		t.Errorf("no counts line gave %v", err)
	}

	// A gzip file cut short fails with the decompressor's complaint.
	pdbData, _ := resource.DefaultBundle().Open("ethanol", "pdb")
	z := gz(pdbData)
	if _, err := ParseFile(write("cut.pdb.gz", z[:len(z)/2])); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("cut gzip gave %v", err)
	}
}
