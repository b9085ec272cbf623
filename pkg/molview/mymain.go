package molview

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/andrew-torda/molbond/pkg/bond"
	"github.com/andrew-torda/molbond/pkg/codec"
	"github.com/andrew-torda/molbond/pkg/config"
	"github.com/andrew-torda/molbond/pkg/ligcache"
	"github.com/andrew-torda/molbond/pkg/render"
	"github.com/andrew-torda/molbond/pkg/resource"
)

// Output formats besides the codecs.
const (
	FmtSummary   = "summary"
	FmtPNG       = "png"
	FmtInstances = "instances"
)

// ErrSomeFailed means at least one name could not be loaded. The
// others were still written.
var ErrSomeFailed = errors.New("some molecules could not be read")

// CmdFlag has the command line options. Zero values mean the flag was
// not given and the config file, or its default, wins.
type CmdFlag struct {
	Source     string
	Format     string
	OutFile    string
	ConfigFile string
	Dedup      bool
	Radius     float64
	LogDest    string
	Verbose    bool
}

// Settings combines the config file with the command line.
func Settings(flags *CmdFlag) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.ConfigFile != "" {
		cfg, _, err = config.LoadFromPath(flags.ConfigFile)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if flags.Source != "" {
		cfg.Source = flags.Source
	}
	if flags.Format != "" {
		cfg.Format = flags.Format
	}
	if flags.Dedup {
		cfg.Bond.Dedup = true
	}
	if flags.Radius > 0 {
		cfg.Bond.Radius = flags.Radius
	}
	if flags.LogDest != "" {
		cfg.Log = flags.LogDest
	}
	return cfg, cfg.Validate()
}

// checkFormat catches a bad -f before we download anything.
func checkFormat(format string) error {
	if format == FmtSummary || format == FmtPNG || format == FmtInstances {
		return nil
	}
	_, err := codec.ByName(format)
	return err
}

// Mymain loads every name and writes the results to stdout, or to
// flags.OutFile. Names that fail are reported on stderr.
func Mymain(ctx context.Context, flags *CmdFlag, names []string, stdout, stderr io.Writer) error {
	cfg, err := Settings(flags)
	if err != nil {
		return err
	}
	if err := checkFormat(cfg.Format); err != nil {
		return err
	}
	src, err := ParseSource(cfg.Source)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	lg, logCloser, err := config.LogWhere(cfg.Log, level)
	if err != nil {
		return fmt.Errorf("%w creating log file", err)
	}
	defer logCloser.Close()

	loader := &Loader{
		Bundle: resource.DefaultBundle(),
		Fetcher: &resource.Fetcher{
			Client:      &http.Client{Timeout: cfg.Fetch.Timeout},
			URLTemplate: cfg.Fetch.URLTemplate,
			Log:         lg,
		},
		Log: lg,
	}
	if src == HTTPSrc && cfg.Fetch.Cache != "" {
		cache, err := ligcache.New(cfg.Fetch.Cache)
		if err != nil {
			return err
		}
		defer cache.Close()
		loader.Fetcher.Cache = cache
	}

	outs := loader.LoadAll(ctx, names, src, cfg.Fetch.Workers)
	nFail := 0
	for _, o := range outs {
		if o.Err != nil {
			nFail++
			fmt.Fprintf(stderr, "%s: %v\n", o.Name, o.Err)
		}
	}
	if len(outs) > 0 && nFail == len(outs) {
		return ErrSomeFailed
	}

	if flags.OutFile != "" && flags.OutFile != "-" {
		err = writeFile(flags.OutFile, cfg, outs)
	} else {
		err = write(stdout, cfg, outs)
	}
	if err != nil {
		return err
	}
	if nFail > 0 {
		return ErrSomeFailed
	}
	return nil
}

// writeFile is write to a new file. Output is buffered, so errors may
// only show up at the flush or the close and are returned from there.
func writeFile(name string, cfg *config.Config, outs []Outcome) error {
	fp, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fp)
	err = write(w, cfg, outs)
	if err == nil {
		err = w.Flush()
	}
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// write sends every good outcome to w in the chosen format.
func write(w io.Writer, cfg *config.Config, outs []Outcome) error {
	opts := cfg.BondOptions()
	switch cfg.Format {
	case FmtSummary:
		return Summary(w, outs, opts)
	case FmtPNG:
		var good []Outcome
		for _, o := range outs {
			if o.Err == nil {
				good = append(good, o)
			}
		}
		if len(good) != 1 {
			return fmt.Errorf("png wants one molecule, got %d", len(good))
		}
		sc := Scene(good[0].Mol, opts)
		return render.PNG(&sc, w, cfg.RenderOptions())
	case FmtInstances:
		for _, o := range outs {
			if o.Err != nil {
				continue
			}
			if _, err := fmt.Fprintln(w, "#", o.Name); err != nil {
				return err
			}
			if err := bond.WriteInstances(w, bond.InstanceTable(bond.Split(o.Mol, opts))); err != nil {
				return fmt.Errorf("%s: %w", o.Name, err)
			}
		}
		return nil
	}
	c, err := codec.ByName(cfg.Format)
	if err != nil {
		return err
	}
	for _, o := range outs {
		if o.Err != nil {
			continue
		}
		sc := Scene(o.Mol, opts)
		if err := c.Export(&sc, w); err != nil {
			return fmt.Errorf("%s: %w", o.Name, err)
		}
	}
	return nil
}

// Summary writes one line per molecule: counts of atoms, bonds,
// segments and connected fragments.
func Summary(w io.Writer, outs []Outcome, opts bond.Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tformat\tatoms\tbonds\tsegments\tfragments\ttitle")
	for _, o := range outs {
		if o.Err != nil {
			continue
		}
		m := o.Mol
		frags, err := m.Fragments()
		if err != nil {
			return fmt.Errorf("%s: %w", o.Name, err)
		}
		nSeg := len(bond.Split(m, opts))
		fmt.Fprintf(tw, "%s\t%v\t%d\t%d\t%d\t%d\t%s\n",
			o.Name, m.Format(), m.Len(), nSeg/2, nSeg, len(frags), m.Title())
	}
	return tw.Flush()
}
