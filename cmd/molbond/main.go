// 17 Oct 2026

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	. "github.com/andrew-torda/molbond/pkg/common"
	"github.com/andrew-torda/molbond/pkg/molview"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] name [name ...]")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags molview.CmdFlag
	flag.StringVar(&flags.Source, "s", "", "where names come from: file, bundle or rcsb")
	flag.StringVar(&flags.Format, "f", "", "output: summary, png, instances, json, yaml or msgpack")
	flag.StringVar(&flags.OutFile, "o", "", "output file name, default stdout")
	flag.StringVar(&flags.ConfigFile, "c", "", "config file, default searched for")
	flag.BoolVar(&flags.Dedup, "u", false, "drop bonds listed twice")
	flag.Float64Var(&flags.Radius, "r", 0, "bond cylinder radius")
	flag.StringVar(&flags.LogDest, "l", "", "log to stdout, stderr or a file")
	flag.BoolVar(&flags.Verbose, "v", false, "debug logging")
	flag.Parse()

	if flag.NArg() == 0 {
		os.Exit(usage())
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := molview.Mymain(ctx, &flags, flag.Args(), os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, molview.ErrSomeFailed):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitPartial)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}
