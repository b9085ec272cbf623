package codec_test

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/molbond/pkg/bond"
	. "github.com/andrew-torda/molbond/pkg/codec"
	"github.com/andrew-torda/molbond/pkg/geom"
	"github.com/andrew-torda/molbond/pkg/mol"
)

func scene(t *testing.T) *bond.Scene {
	t.Helper()
	atoms := []mol.Atom{
		{ID: 1, Name: "C1", Radius: 0.5, Pos: geom.Vec3{X: -0.748, Y: 0.015, Z: 0.024}},
		{ID: 2, Name: "O1", Radius: 0.5, Pos: geom.Vec3{X: 1.469, Y: 0.765, Z: 0.093}},
	}
	m, err := mol.New("co", mol.PDB, atoms, []mol.Edge{{A: 1, B: 2}})
	if err != nil {
		t.Fatal(err)
	}
	sc := bond.Build(m, bond.DefaultOptions())
	return &sc
}

func TestHex(t *testing.T) {
	if s := Hex(color.RGBA{128, 128, 128, 255}); s != "#808080ff" {
		t.Errorf("got %s", s)
	}
}

func TestToDoc(t *testing.T) {
	doc := ToDoc(scene(t))
	if doc.Title != "co" || len(doc.Atoms) != 2 || len(doc.Segments) != 2 {
		t.Fatalf("got %+v", doc)
	}
	if doc.Atoms[1].Symbol != "O" || doc.Atoms[1].Color != "#ff0000ff" {
		t.Errorf("oxygen %+v", doc.Atoms[1])
	}
	s := doc.Segments[1]
	if s.Atom != 2 || s.End != doc.Atoms[1].Center || s.Color != "#ff0000ff" {
		t.Errorf("second half %+v", s)
	}
}

// Whatever we write, we can read back.
func TestDecodable(t *testing.T) {
	sc := scene(t)
	want := ToDoc(sc)
	for _, name := range Names() {
		c, err := ByName(name)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := c.Export(sc, &buf); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := c.Parse(&buf)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}
}

func TestByName(t *testing.T) {
	if diff := cmp.Diff([]string{"json", "msgpack", "yaml"}, Names()); diff != "" {
		t.Error(diff)
	}
	if _, err := ByName("xml"); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("got %v", err)
	}
}

func TestJSONLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONCodec().Export(scene(t), &buf); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{`"title": "co"`, `"symbol": "C"`, `"color": "#808080ff"`, `"rotation": [`} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("no %s in\n%s", s, buf.String())
		}
	}
}

func TestParseRubbish(t *testing.T) {
	for _, name := range Names() {
		c, _ := ByName(name)
		if _, err := c.Parse(strings.NewReader("{[nonsense")); err == nil {
			t.Errorf("%s accepted rubbish", name)
		}
	}
}

type fullWriter struct{}

func (fullWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

// A writer that fails must not look like a good export.
func TestExportWriteError(t *testing.T) {
	for _, name := range Names() {
		c, err := ByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := c.Export(scene(t), fullWriter{}); err == nil {
			t.Errorf("%s: no error from a full disk", name)
		}
	}
}
