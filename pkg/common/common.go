// Package common has the few constants and helpers used by more than
// one package or by the command line program.
package common

import (
	"fmt"
	"os"
)

// Exit codes from molbond.
const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
	ExitPartial // some, but not all, of the molecules could be read
)

// WrtTemp writes to a temporary file and returns the name. Tests use
// it all over the place. pattern is handed to os.CreateTemp, so
// "x*.pdb" gives a name ending in .pdb.
func WrtTemp(pattern string, data []byte) (string, error) {
	if pattern == "" {
		pattern = "_del_me_testing"
	}
	fTmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	name := fTmp.Name()
	if _, err := fTmp.Write(data); err != nil {
		fTmp.Close()
		return "", fmt.Errorf("writing to temp file %v: %w", name, err)
	}
	if err := fTmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file %v: %w", name, err)
	}
	return name, nil
}
