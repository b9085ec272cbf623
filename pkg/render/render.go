// Package render draws a quick picture of a scene as a PNG. It looks
// straight down the Z axis, with no perspective, and paints from the
// back to the front. It is for checking a molecule came out right, not
// for making pretty pictures.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/molbond/pkg/bond"
	"github.com/andrew-torda/molbond/pkg/geom"
)

// Options for a picture. Zero values get the defaults.
type Options struct {
	Width, Height int
	Margin        int     // pixels left clear round the molecule
	FontSize      float64 // points, for the atom labels
	Labels        bool
	Background    color.Color
}

// DefaultOptions gives a 512 x 512 picture on white.
func DefaultOptions() Options {
	return Options{Width: 512, Height: 512, Margin: 24, FontSize: 12, Background: color.White}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	if o.Background == nil {
		o.Background = d.Background
	}
	return o
}

// Projector maps molecule coordinates onto the picture. y goes up in
// the molecule and down in the image.
type Projector struct {
	Scale  float64
	lo     geom.Vec3
	x0, y0 float64 // image position of lo
}

// NewProjector fits the x, y extent of the scene into the picture,
// keeping the aspect ratio. Sphere radii are included, so atoms at the
// edge are not cut off.
func NewProjector(scene *bond.Scene, opts Options) Projector {
	opts = opts.withDefaults()
	lo := geom.Vec3{X: math.Inf(1), Y: math.Inf(1)}
	hi := geom.Vec3{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(p geom.Vec3, r float64) {
		lo.X, lo.Y = math.Min(lo.X, p.X-r), math.Min(lo.Y, p.Y-r)
		hi.X, hi.Y = math.Max(hi.X, p.X+r), math.Max(hi.Y, p.Y+r)
	}
	for _, s := range scene.Spheres {
		grow(s.Center, s.Radius)
	}
	for _, s := range scene.Segments {
		grow(s.Start, s.Radius)
		grow(s.End, s.Radius)
	}
	if math.IsInf(lo.X, 0) { // nothing to draw
		lo, hi = geom.Vec3{}, geom.Vec3{X: 1, Y: 1}
	}
	w := float64(opts.Width - 2*opts.Margin)
	h := float64(opts.Height - 2*opts.Margin)
	dx, dy := math.Max(hi.X-lo.X, 1e-6), math.Max(hi.Y-lo.Y, 1e-6)
	scale := math.Max(math.Min(w/dx, h/dy), 1e-6)
	// centre the molecule in the picture
	x0 := (float64(opts.Width) - scale*dx) / 2
	y0 := (float64(opts.Height) + scale*dy) / 2
	return Projector{Scale: scale, lo: lo, x0: x0, y0: y0}
}

// Point gives image coordinates for p.
func (pr Projector) Point(p geom.Vec3) (x, y float64) {
	return pr.x0 + pr.Scale*(p.X-pr.lo.X), pr.y0 - pr.Scale*(p.Y-pr.lo.Y)
}

type item struct {
	z    float64
	draw func(dc *gg.Context)
}

// Draw paints the scene onto a new gg context.
func Draw(scene *bond.Scene, opts Options) (*gg.Context, error) {
	opts = opts.withDefaults()
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()
	pr := NewProjector(scene, opts)

	items := make([]item, 0, len(scene.Segments)+len(scene.Spheres))
	for _, s := range scene.Segments {
		x1, y1 := pr.Point(s.Start)
		x2, y2 := pr.Point(s.End)
		width := 2 * s.Radius * pr.Scale
		c := s.Color
		items = append(items, item{
			z: s.Transform.Position.Z,
			draw: func(dc *gg.Context) {
				dc.SetColor(c)
				dc.SetLineWidth(width)
				dc.SetLineCapRound()
				dc.DrawLine(x1, y1, x2, y2)
				dc.Stroke()
			},
		})
	}
	for _, s := range scene.Spheres {
		x, y := pr.Point(s.Center)
		r := s.Radius * pr.Scale
		c := s.Color
		items = append(items, item{
			z: s.Center.Z,
			draw: func(dc *gg.Context) {
				dc.SetColor(c)
				dc.DrawCircle(x, y, r)
				dc.Fill()
				dc.SetRGBA(0, 0, 0, 0.6)
				dc.SetLineWidth(1)
				dc.DrawCircle(x, y, r)
				dc.Stroke()
			},
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].z < items[j].z })
	for _, it := range items {
		it.draw(dc)
	}

	if opts.Labels {
		if err := labels(dc, scene, pr, opts.FontSize); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

// labels writes atom names on top of everything else.
func labels(dc *gg.Context, scene *bond.Scene, pr Projector, size float64) error {
	fnt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("loading label font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(fnt, &truetype.Options{Size: size}))
	dc.SetRGB(0, 0, 0)
	for _, s := range scene.Spheres {
		x, y := pr.Point(s.Center)
		dc.DrawStringAnchored(s.Name, x, y, 0.5, 0.5)
	}
	return nil
}

// PNG draws the scene and writes it to w.
func PNG(scene *bond.Scene, w io.Writer, opts Options) error {
	dc, err := Draw(scene, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
