// Package resource gets the text of molecule files from wherever they
// live: the local disk, the samples built into the binary, or the
// RCSB ligand server.
package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/molbond/pkg/mol"
)

// openFile opens a regular file. Missing files and directories give
// a *mol.ResourceError.
func openFile(name string) (*os.File, fs.FileInfo, error) {
	fp, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, &mol.ResourceError{Name: name, Err: err}
		}
		return nil, nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, nil, err
	}
	if fi.IsDir() {
		fp.Close()
		return nil, nil, &mol.ResourceError{Name: name, Err: errors.New("is a directory")}
	}
	return fp, fi, nil
}

// Open opens a file for streaming. If it is gzipped, reads come
// through the decompressor. The caller closes it.
func Open(name string) (*GzipReader, error) {
	fp, _, err := openFile(name)
	if err != nil {
		return nil, err
	}
	g, err := WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return g, nil
}

// ReadFile maps the file into memory, copies it out and unmaps it.
// A file that does not exist gives a *mol.ResourceError. An empty file
// gives an empty slice and no error. The parsers will complain later.
func ReadFile(name string) ([]byte, error) {
	fp, fi, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	if fi.Size() == 0 { // mmap refuses zero length
		return []byte{}, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer mm.Unmap()
	b := make([]byte, len(mm))
	copy(b, mm)
	return b, nil
}
