package resource_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/andrew-torda/molbond/pkg/mol"
	. "github.com/andrew-torda/molbond/pkg/resource"
)

const hoh = `HOH
  made up

  1  0  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 O   0  0
M  END
$$$$
`

type memCache struct {
	sync.Mutex
	m map[string][]byte
}

func (c *memCache) Get(_ context.Context, code string) ([]byte, bool, error) {
	c.Lock()
	defer c.Unlock()
	b, ok := c.m[code]
	return b, ok, nil
}

func (c *memCache) Put(_ context.Context, code, _ string, data []byte) error {
	c.Lock()
	defer c.Unlock()
	if c.m == nil {
		c.m = make(map[string][]byte)
	}
	c.m[code] = data
	return nil
}

// ligandServer knows HOH, has nothing to say about EMT and is broken
// for BAD.
func ligandServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/HOH_ideal.sdf":
			w.Write([]byte(hoh))
		case "/EMT_ideal.sdf":
		case "/BAD_ideal.sdf":
			http.Error(w, "oops", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	var hits atomic.Int32
	srv := ligandServer(t, &hits)
	cache := new(memCache)
	f := Fetcher{Client: srv.Client(), URLTemplate: srv.URL + "/%s_ideal.sdf", Cache: cache}
	ctx := context.Background()

	b, err := f.Fetch(ctx, "hoh")
	if err != nil || string(b) != hoh {
		t.Fatalf("got %q %v", b, err)
	}
	if _, err := f.Fetch(ctx, "HOH"); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server asked %d times, cache should have answered", n)
	}
	if _, ok, _ := cache.Get(ctx, "HOH"); !ok {
		t.Error("nothing in the cache")
	}
}

func TestFetchErrors(t *testing.T) {
	var hits atomic.Int32
	srv := ligandServer(t, &hits)
	f := Fetcher{Client: srv.Client(), URLTemplate: srv.URL + "/%s_ideal.sdf"}
	ctx := context.Background()

	_, err := f.Fetch(ctx, "XYZ")
	var rErr *mol.ResourceError
	if !errors.Is(err, mol.ErrResourceNotFound) || !errors.As(err, &rErr) || rErr.Name != "XYZ" {
		t.Errorf("404 gave %v", err)
	}
	if _, err := f.Fetch(ctx, "EMT"); !errors.Is(err, mol.ErrEmptyInput) {
		t.Errorf("empty body gave %v", err)
	}
	_, err = f.Fetch(ctx, "BAD")
	if err == nil || errors.Is(err, mol.ErrResourceNotFound) || !strings.Contains(err.Error(), "500") {
		t.Errorf("server error gave %v", err)
	}
	for _, code := range []string{"", "TOOLONG", "A-B", "é"} {
		if _, err := f.Fetch(ctx, code); !errors.Is(err, ErrBadCode) {
			t.Errorf("code %q gave %v", code, err)
		}
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("server asked %d times, bad codes should not get that far", n)
	}
}

func TestFetchCancelled(t *testing.T) {
	var hits atomic.Int32
	srv := ligandServer(t, &hits)
	f := Fetcher{Client: srv.Client(), URLTemplate: srv.URL + "/%s_ideal.sdf"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "HOH"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

func TestURL(t *testing.T) {
	var f Fetcher
	if u := f.URL("ATP"); u != "https://files.rcsb.org/ligands/view/ATP_ideal.sdf" {
		t.Errorf("got %s", u)
	}
	if c, err := CheckCode("atp"); err != nil || c != "ATP" {
		t.Errorf("got %s %v", c, err)
	}
}
