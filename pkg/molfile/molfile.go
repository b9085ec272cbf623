// Package molfile decides whether some text is a pdb or an sdf file
// and sends it to the right reader.
// We look at the name first. If that does not help, we peek inside.
package molfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/molbond/pkg/mol"
	"github.com/andrew-torda/molbond/pkg/pdb"
	"github.com/andrew-torda/molbond/pkg/resource"
	"github.com/andrew-torda/molbond/pkg/sdf"
)

const maxTestLines = 5000

var pdbWords = []string{"HETATM", "CONECT", "COMPND", "REMARK", "HEADER", "ATOM"}

// FormatFromName guesses the format from the file name. We cannot use
// filepath.Ext, since it would give us .gz for a.pdb.gz, so we look
// at everything after the first dot.
func FormatFromName(name string) (mol.Format, bool) {
	s := filepath.Base(name)
	i := strings.IndexByte(s, '.')
	if i == -1 {
		return mol.Unknown, false
	}
	for _, ext := range strings.Split(strings.ToLower(s[i+1:]), ".") {
		switch ext {
		case "pdb", "ent":
			return mol.PDB, true
		case "sdf", "mol":
			return mol.SDF, true
		}
	}
	return mol.Unknown, false
}

// Sniff looks in the first lines of data for something that gives
// the format away.
func Sniff(data []byte) (mol.Format, error) {
	scnnr := bufio.NewScanner(bytes.NewReader(data))
	scnnr.Buffer(make([]byte, 0, 4096), 1024*1024)
	for i := 0; i < maxTestLines && scnnr.Scan(); i++ {
		s := scnnr.Text()
		if strings.Contains(s, "V2000") {
			return mol.SDF, nil
		}
		for _, w := range pdbWords {
			if strings.HasPrefix(s, w) {
				return mol.PDB, nil
			}
		}
	}
	return mol.Unknown, mol.ErrUnknownFormat
}

// Detect tries the name, then the contents.
func Detect(name string, data []byte) (mol.Format, error) {
	if f, ok := FormatFromName(name); ok {
		return f, nil
	}
	f, err := Sniff(data)
	if err != nil {
		return f, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// ParseReaderAs reads a molecule in a known format from r.
func ParseReaderAs(format mol.Format, r io.Reader) (*mol.Molecule, error) {
	switch format {
	case mol.PDB:
		return pdb.ParseReader(r)
	case mol.SDF:
		return sdf.ParseReader(r)
	}
	return nil, mol.ErrUnknownFormat
}

// ParseAs reads data in a known format.
func ParseAs(format mol.Format, data []byte) (*mol.Molecule, error) {
	return ParseReaderAs(format, bytes.NewReader(data))
}

// Parse decompresses data if necessary, works out the format and reads
// the molecule. name is only used for guessing the format and in
// error messages.
func Parse(name string, data []byte) (*mol.Molecule, error) {
	data, err := resource.Gunzip(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", name, mol.ErrEmptyInput)
	}
	format, err := Detect(name, data)
	if err != nil {
		return nil, err
	}
	m, err := ParseAs(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s as %v: %w", name, format, err)
	}
	return m, nil
}

// inkReader notes whether anything but white space went past.
type inkReader struct {
	rdr io.Reader
	ink bool
}

func (k *inkReader) Read(p []byte) (int, error) {
	n, err := k.rdr.Read(p)
	if !k.ink && len(bytes.TrimSpace(p[:n])) > 0 {
		k.ink = true
	}
	return n, err
}

// ParseFile reads a molecule from disk. If the name gives the format
// away, the file is streamed, through a decompressor if it is gzipped,
// into the reader for that format. Otherwise we read the whole file
// and sniff it.
func ParseFile(name string) (*mol.Molecule, error) {
	format, ok := FormatFromName(name)
	if !ok {
		data, err := resource.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return Parse(name, data)
	}
	rdr, err := resource.Open(name)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	k := &inkReader{rdr: rdr}
	m, err := ParseReaderAs(format, k)
	if err != nil && !k.ink && errors.Is(err, mol.ErrMalformedRecord) {
		err = mol.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%s as %v: %w", name, format, err)
	}
	return m, nil
}
