package resource_test

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/andrew-torda/molbond/pkg/common"
	"github.com/andrew-torda/molbond/pkg/mol"
	. "github.com/andrew-torda/molbond/pkg/resource"
)

// both of these are "andrewsayshello", but the first is compressed.
var gztests = []struct {
	data    []byte
	gzipped bool
}{
	{[]byte{
		0x1f, 0x8b, 0x08, 0x00, 0xb6, 0xf1, 0xa0, 0x5b, 0x00, 0x03,
		0x4b, 0xcc, 0x4b, 0x29, 0x4a, 0x2d, 0x2f, 0x4e, 0xac, 0x2c,
		0xce, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x44, 0xa8, 0x66,
		0x89, 0x0f, 0x00, 0x00, 0x00},
		true,
	},
	{[]byte("andrewsayshello"), false},
}

func TestReadFile(t *testing.T) {
	name, err := common.WrtTemp("", []byte("HETATM 1 C1 LIG A 1 2 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(name)
	b, err := ReadFile(name)
	if err != nil || string(b) != "HETATM 1 C1 LIG A 1 2 3\n" {
		t.Errorf("got %q %v", b, err)
	}
}

func TestReadFileEmpty(t *testing.T) {
	name, err := common.WrtTemp("", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(name)
	b, err := ReadFile(name)
	if err != nil || len(b) != 0 {
		t.Errorf("empty file gave %q %v", b, err)
	}
}

func TestReadFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "not_there.pdb")
	_, err := ReadFile(missing)
	if !errors.Is(err, mol.ErrResourceNotFound) {
		t.Errorf("got %v", err)
	}
	var rErr *mol.ResourceError
	if !errors.As(err, &rErr) || rErr.Name != missing {
		t.Errorf("got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("lost the cause: %v", err)
	}
}

func TestGunzip(t *testing.T) {
	for _, x := range gztests {
		if IsGzip(x.data) != x.gzipped {
			t.Errorf("IsGzip wrong for gzipped=%v", x.gzipped)
		}
		b, err := Gunzip(x.data)
		if err != nil || string(b) != "andrewsayshello" {
			t.Errorf("gzipped=%v gave %q %v", x.gzipped, b, err)
		}
	}
	if _, err := Gunzip([]byte{0x1f, 0x8b, 0, 0}); err == nil {
		t.Error("broken gzip data should be an error")
	}
}

func tmpFile(t *testing.T, data []byte) *os.File {
	t.Helper()
	name, err := common.WrtTemp("", data)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(name) })
	fp, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	return fp
}

func TestWrap(t *testing.T) {
	for _, x := range gztests {
		fp := tmpFile(t, x.data)
		g, err := Wrap(fp)
		if (err == nil) != x.gzipped {
			t.Errorf("gzipped=%v Wrap gave %v", x.gzipped, err)
		}
		if err != nil {
			fp.Close()
			continue
		}
		b, _ := io.ReadAll(g)
		if string(b) != "andrewsayshello" {
			t.Errorf("wrong string: %q", b)
		}
		if err := g.Close(); err != nil {
			t.Errorf("closing: %v", err)
		}
	}
}

// WrapMaybe should not fail since it guesses if the file is
// compressed or not.
func TestWrapMaybe(t *testing.T) {
	for _, x := range gztests {
		g, err := WrapMaybe(tmpFile(t, x.data))
		if err != nil {
			t.Fatalf("gzipped=%v gave %v", x.gzipped, err)
		}
		b, _ := io.ReadAll(g)
		if string(b) != "andrewsayshello" {
			t.Errorf("wrong string: %q", b)
		}
		if err := g.Close(); err != nil {
			t.Errorf("closing: %v", err)
		}
	}
}

func TestOpen(t *testing.T) {
	for _, x := range gztests {
		fp := tmpFile(t, x.data)
		fp.Close()
		g, err := Open(fp.Name())
		if err != nil {
			t.Fatalf("gzipped=%v gave %v", x.gzipped, err)
		}
		b, err := io.ReadAll(g)
		if err != nil || string(b) != "andrewsayshello" {
			t.Errorf("got %q %v", b, err)
		}
		g.Close()
	}
	dir := t.TempDir()
	for _, name := range []string{dir, filepath.Join(dir, "nothing.pdb")} {
		if _, err := Open(name); !errors.Is(err, mol.ErrResourceNotFound) {
			t.Errorf("%s gave %v", name, err)
		}
	}
}

func TestBundle(t *testing.T) {
	b := DefaultBundle()
	for _, ext := range []string{"pdb", "sdf"} {
		data, err := b.Open("ethanol", ext)
		if err != nil || len(data) == 0 {
			t.Errorf("ethanol.%s: %v", ext, err)
		}
	}
	if _, err := b.Open("ethanol.pdb", "pdb"); err != nil {
		t.Errorf("name with type already on it: %v", err)
	}
	_, err := b.Open("caffeine", "pdb")
	if !errors.Is(err, mol.ErrResourceNotFound) {
		t.Errorf("missing resource gave %v", err)
	}
	names, err := b.Names()
	if err != nil || len(names) != 2 {
		t.Errorf("names %v %v", names, err)
	}
}

func TestBundleFS(t *testing.T) {
	b := Bundle{FS: fstest.MapFS{"x.sdf": {Data: []byte("abc")}}}
	data, err := b.Open("x", "sdf")
	if err != nil || !bytes.Equal(data, []byte("abc")) {
		t.Errorf("got %q %v", data, err)
	}
	if _, err := (Bundle{}).Open("x", "sdf"); !errors.Is(err, mol.ErrResourceNotFound) {
		t.Errorf("empty bundle gave %v", err)
	}
}

func TestSplitName(t *testing.T) {
	for _, tt := range []struct{ in, name, ext string }{
		{"ethanol.pdb", "ethanol", "pdb"},
		{"ethanol", "ethanol", ""},
		{"a.b.sdf", "a.b", "sdf"},
	} {
		if n, e := SplitName(tt.in); n != tt.name || e != tt.ext {
			t.Errorf("%s gave %s %s", tt.in, n, e)
		}
	}
}

func gzipped(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestGunzipRoundTrip(t *testing.T) {
	const s = "  0  0 V2000\n"
	b, err := Gunzip(gzipped(t, s))
	if err != nil || string(b) != s {
		t.Errorf("got %q %v", b, err)
	}
}
