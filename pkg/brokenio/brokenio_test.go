package brokenio_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andrew-torda/molbond/pkg/brokenio"
)

func TestReader(t *testing.T) {
	const s = "andrewsayshello\n"
	for _, nGood := range []int{0, 1, 5, len(s) - 1} {
		r := brokenio.NewReader(strings.NewReader(s), nGood)
		r.SetChunk(2)
		b, err := io.ReadAll(r)
		if !errors.Is(err, brokenio.ErrBroken) {
			t.Errorf("nGood %d got error %v", nGood, err)
		}
		if string(b) != s[:nGood] || r.NByte() != nGood {
			t.Errorf("nGood %d read %q", nGood, b)
		}
	}
}

// If the source runs out first, we see a normal EOF.
func TestShortSource(t *testing.T) {
	r := brokenio.NewReader(strings.NewReader("abc"), 100)
	b, err := io.ReadAll(r)
	if err != nil || string(b) != "abc" {
		t.Errorf("got %q %v", b, err)
	}
}
