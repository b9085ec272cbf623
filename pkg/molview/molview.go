// Package molview puts the pieces together: get the text of a
// molecule from a file, the bundled samples or the RCSB, parse it and
// build the scene.
package molview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/molbond/pkg/bond"
	"github.com/andrew-torda/molbond/pkg/mol"
	"github.com/andrew-torda/molbond/pkg/molfile"
	"github.com/andrew-torda/molbond/pkg/resource"
)

// Source says where to look for a molecule name.
type Source byte

const (
	FileSrc   Source = iota // name is a path
	BundleSrc               // name is a bundled sample, like "ethanol" or "ethanol.sdf"
	HTTPSrc                 // name is a ligand code, like "ATP"
)

func (s Source) String() string {
	switch s {
	case FileSrc:
		return "file"
	case BundleSrc:
		return "bundle"
	case HTTPSrc:
		return "rcsb"
	}
	return "unknown"
}

// ParseSource is the inverse of String.
func ParseSource(s string) (Source, error) {
	for _, src := range []Source{FileSrc, BundleSrc, HTTPSrc} {
		if s == src.String() {
			return src, nil
		}
	}
	return FileSrc, fmt.Errorf("unknown source %q", s)
}

// ErrNoFetcher is from asking for a download from a Loader without a
// Fetcher.
var ErrNoFetcher = errors.New("no fetcher configured")

// bundleTypes are tried in order for a bundled name with no type.
var bundleTypes = []string{"pdb", "sdf"}

// Loader gets molecules. It is not changed by loading, so one Loader
// can serve many goroutines.
type Loader struct {
	Bundle  resource.Bundle
	Fetcher *resource.Fetcher
	Log     *slog.Logger
}

func (l *Loader) log() *slog.Logger {
	if l.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Log
}

// text gets the raw bytes and a name good enough to guess the format
// from. Files are not read here, they are streamed by molfile.
func (l *Loader) text(ctx context.Context, name string, src Source) (string, []byte, error) {
	switch src {
	case BundleSrc:
		base, ext := resource.SplitName(name)
		if ext != "" {
			data, err := l.Bundle.Open(base, ext)
			return name, data, err
		}
		var err error
		for _, ext := range bundleTypes {
			var data []byte
			if data, err = l.Bundle.Open(name, ext); err == nil {
				return name + "." + ext, data, nil
			}
		}
		return name, nil, err
	case HTTPSrc:
		if l.Fetcher == nil {
			return name, nil, ErrNoFetcher
		}
		data, err := l.Fetcher.Fetch(ctx, name)
		return name + ".sdf", data, err
	}
	return name, nil, fmt.Errorf("unknown source %v", src)
}

// Load gets and parses one molecule.
func (l *Loader) Load(ctx context.Context, name string, src Source) (*mol.Molecule, error) {
	return l.load(ctx, l.log(), name, src)
}

func (l *Loader) load(ctx context.Context, lg *slog.Logger, name string, src Source) (*mol.Molecule, error) {
	start := time.Now()
	var m *mol.Molecule
	if src == FileSrc {
		var err error
		if m, err = molfile.ParseFile(name); err != nil {
			lg.Warn("cannot read molecule", "name", name, "source", src, "err", err)
			return nil, err
		}
	} else {
		fname, data, err := l.text(ctx, name, src)
		if err != nil {
			lg.Warn("cannot get molecule", "name", name, "source", src, "err", err)
			return nil, err
		}
		if m, err = molfile.Parse(fname, data); err != nil {
			lg.Warn("cannot parse molecule", "name", name, "err", err)
			return nil, err
		}
	}
	lg.Info("loaded", "name", name, "format", m.Format(), "atoms", m.Len(),
		"bonds", m.NEdge(), "took", time.Since(start))
	return m, nil
}

// Outcome is what happened to one name in LoadAll. Exactly one of Mol
// and Err is set.
type Outcome struct {
	Name string
	Mol  *mol.Molecule
	Err  error
}

// LoadAll loads names at the same time, at most limit at once. One
// failure does not stop the others. Outcomes come back in the order of
// names.
func (l *Loader) LoadAll(ctx context.Context, names []string, src Source, limit int) []Outcome {
	lg := l.log().With("batch", uuid.NewString())
	lg.Debug("batch start", "n", len(names), "source", src, "limit", limit)
	out := make([]Outcome, len(names))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, name := range names {
		i, name := i, name // per-iteration copies for go 1.21
		g.Go(func() error {
			m, err := l.load(ctx, lg, name, src)
			out[i] = Outcome{Name: name, Mol: m, Err: err}
			return nil
		})
	}
	g.Wait() // never an error, each outcome carries its own
	return out
}

// Scene builds the drawing for a molecule.
func Scene(m *mol.Molecule, opts bond.Options) bond.Scene {
	return bond.Build(m, opts)
}
