package resource

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/andrew-torda/molbond/pkg/mol"
)

//go:embed bundled
var bundled embed.FS

// Bundle is a set of molecule files shipped with the program, looked
// up by name and type, as in "ethanol" of type "pdb".
type Bundle struct {
	FS fs.FS
}

// DefaultBundle has the samples compiled into the binary.
func DefaultBundle() Bundle {
	sub, err := fs.Sub(bundled, "bundled")
	if err != nil { // only if the embed directive is wrong
		panic(err)
	}
	return Bundle{FS: sub}
}

// Open returns the contents of name.ext. If name already ends in
// .ext, it is not added twice.
func (b Bundle) Open(name, ext string) ([]byte, error) {
	fname := name
	if ext != "" && !strings.HasSuffix(name, "."+ext) {
		fname = name + "." + ext
	}
	if b.FS == nil {
		return nil, &mol.ResourceError{Name: fname, Err: errors.New("no bundle")}
	}
	data, err := fs.ReadFile(b.FS, fname)
	if err != nil {
		return nil, &mol.ResourceError{Name: fname, Err: err}
	}
	return data, nil
}

// Names lists the files in the bundle.
func (b Bundle) Names() ([]string, error) {
	if b.FS == nil {
		return nil, nil
	}
	return fs.Glob(b.FS, "*.*")
}

// SplitName cuts "ethanol.sdf" into "ethanol" and "sdf". Without a dot
// the type is empty.
func SplitName(s string) (name, ext string) {
	ext = path.Ext(s)
	if ext == "" {
		return s, ""
	}
	return strings.TrimSuffix(s, ext), ext[1:]
}
