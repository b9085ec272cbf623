// Package codec writes a bond.Scene out in a form other programs can
// read: JSON, YAML or MessagePack. All three share one document
// layout, so a viewer can take whichever is handiest.
package codec

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"github.com/andrew-torda/molbond/pkg/bond"
	"github.com/andrew-torda/molbond/pkg/geom"
)

// Exporter writes a scene.
type Exporter interface {
	Export(scene *bond.Scene, w io.Writer) error
	Format() string
}

// Importer reads back what an Exporter wrote.
type Importer interface {
	Parse(r io.Reader) (*SceneDoc, error)
	Format() string
}

// Codec does both.
type Codec interface {
	Exporter
	Importer
}

// SceneDoc is the document layout. Vectors are [x, y, z], rotations
// are quaternions [x, y, z, w] and colours are "#rrggbbaa".
type SceneDoc struct {
	Title    string       `json:"title" yaml:"title" msgpack:"title"`
	Atoms    []AtomDoc    `json:"atoms" yaml:"atoms" msgpack:"atoms"`
	Segments []SegmentDoc `json:"segments" yaml:"segments" msgpack:"segments"`
}

type AtomDoc struct {
	ID     int        `json:"id" yaml:"id" msgpack:"id"`
	Name   string     `json:"name" yaml:"name" msgpack:"name"`
	Symbol string     `json:"symbol" yaml:"symbol" msgpack:"symbol"`
	Center [3]float64 `json:"center" yaml:"center,flow" msgpack:"center"`
	Radius float64    `json:"radius" yaml:"radius" msgpack:"radius"`
	Color  string     `json:"color" yaml:"color" msgpack:"color"`
}

type SegmentDoc struct {
	Edge     int        `json:"edge" yaml:"edge" msgpack:"edge"`
	Atom     int        `json:"atom" yaml:"atom" msgpack:"atom"`
	Start    [3]float64 `json:"start" yaml:"start,flow" msgpack:"start"`
	End      [3]float64 `json:"end" yaml:"end,flow" msgpack:"end"`
	Radius   float64    `json:"radius" yaml:"radius" msgpack:"radius"`
	Color    string     `json:"color" yaml:"color" msgpack:"color"`
	Position [3]float64 `json:"position" yaml:"position,flow" msgpack:"position"`
	Rotation [4]float64 `json:"rotation" yaml:"rotation,flow" msgpack:"rotation"`
	Height   float64    `json:"height" yaml:"height" msgpack:"height"`
}

func vec(v geom.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// Hex gives "#rrggbbaa".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ToDoc converts a scene to the document layout.
func ToDoc(scene *bond.Scene) *SceneDoc {
	doc := &SceneDoc{
		Title:    scene.Title,
		Atoms:    make([]AtomDoc, len(scene.Spheres)),
		Segments: make([]SegmentDoc, len(scene.Segments)),
	}
	for i, s := range scene.Spheres {
		doc.Atoms[i] = AtomDoc{
			ID:     s.Atom,
			Name:   s.Name,
			Symbol: s.Symbol,
			Center: vec(s.Center),
			Radius: s.Radius,
			Color:  Hex(s.Color),
		}
	}
	for i, s := range scene.Segments {
		q := s.Transform.Rotation
		doc.Segments[i] = SegmentDoc{
			Edge:     s.Edge,
			Atom:     s.Atom,
			Start:    vec(s.Start),
			End:      vec(s.End),
			Radius:   s.Radius,
			Color:    Hex(s.Color),
			Position: vec(s.Transform.Position),
			Rotation: [4]float64{q.X, q.Y, q.Z, q.W},
			Height:   s.Transform.Height,
		}
	}
	return doc
}

var codecs = map[string]Codec{}

func register(c Codec) { codecs[c.Format()] = c }

func init() {
	register(NewJSONCodec())
	register(NewYAMLCodec())
	register(NewMsgPackCodec())
}

// ByName finds a codec by its Format().
func ByName(name string) (Codec, error) {
	if c, ok := codecs[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown output format %q, know about %v", name, Names())
}

// Names lists the formats we can write.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
