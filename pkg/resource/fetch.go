package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/andrew-torda/molbond/pkg/mol"
)

// RCSBTemplate is where ideal coordinates for a ligand live. %s is the
// upper case ligand code.
const RCSBTemplate = "https://files.rcsb.org/ligands/view/%s_ideal.sdf"

const maxCode = 5

// ErrBadCode is a ligand code we will not even try to fetch.
var ErrBadCode = errors.New("ligand code should be 1 to 5 letters or digits")

// Cache keeps what we fetched, so we do not ask the server twice.
type Cache interface {
	Get(ctx context.Context, code string) ([]byte, bool, error)
	Put(ctx context.Context, code, url string, data []byte) error
}

// Fetcher downloads sdf files for ligand codes. The zero value works
// and uses http.DefaultClient, RCSBTemplate and no cache.
// It does not retry. If the caller wants a timeout, it goes in the
// context.
type Fetcher struct {
	Client      *http.Client
	URLTemplate string
	Cache       Cache
	Log         *slog.Logger
}

// CheckCode checks a ligand code and returns it in upper case.
func CheckCode(code string) (string, error) {
	if len(code) == 0 || len(code) > maxCode {
		return "", fmt.Errorf("%q: %w", code, ErrBadCode)
	}
	for _, c := range code {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum {
			return "", fmt.Errorf("%q: %w", code, ErrBadCode)
		}
	}
	return strings.ToUpper(code), nil
}

func (f *Fetcher) log() *slog.Logger {
	if f.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return f.Log
}

// URL is where we would go for code.
func (f *Fetcher) URL(code string) string {
	tmpl := f.URLTemplate
	if tmpl == "" {
		tmpl = RCSBTemplate
	}
	return fmt.Sprintf(tmpl, code)
}

// Fetch returns the file for a ligand code. A code the server does not
// know gives a *mol.ResourceError. An empty reply gives
// mol.ErrEmptyInput.
func (f *Fetcher) Fetch(ctx context.Context, code string) ([]byte, error) {
	code, err := CheckCode(code)
	if err != nil {
		return nil, err
	}
	lg := f.log().With("code", code)
	if f.Cache != nil {
		data, ok, err := f.Cache.Get(ctx, code)
		if err != nil {
			lg.Warn("cache read failed", "err", err)
		} else if ok {
			lg.Debug("cache hit", "bytes", len(data))
			return data, nil
		}
	}

	url := f.URL(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", code, err)
	}
	defer resp.Body.Close()
	lg.Debug("fetched", "url", url, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &mol.ResourceError{Name: code, Err: fmt.Errorf("%s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("wanted %s using %s, got %s", code, url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if body, err = Gunzip(body); err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%s: %w", url, mol.ErrEmptyInput)
	}

	if f.Cache != nil {
		if err := f.Cache.Put(ctx, code, url, body); err != nil {
			lg.Warn("cache write failed", "err", err)
		}
	}
	return body, nil
}
