package bond

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/matrix"
)

// Columns of an instance table.
const (
	ColPosX = iota
	ColPosY
	ColPosZ
	ColRotX
	ColRotY
	ColRotZ
	ColRotW
	ColHeight
	ColRadius
	ColRed
	ColGreen
	ColBlue
	ColAlpha
	NCol
)

// ColNames are the headings WriteInstances uses.
var ColNames = [NCol]string{
	"px", "py", "pz",
	"qx", "qy", "qz", "qw",
	"height", "radius",
	"r", "g", "b", "a",
}

// InstanceTable packs segments into one float32 row each, the way
// instanced drawing wants them. Colours are scaled to 0..1.
func InstanceTable(segs []Segment) *matrix.FMatrix2d {
	tbl := matrix.NewFMatrix2d(len(segs), NCol)
	for i, s := range segs {
		row := tbl.Mat[i]
		t := s.Transform
		row[ColPosX] = float32(t.Position.X)
		row[ColPosY] = float32(t.Position.Y)
		row[ColPosZ] = float32(t.Position.Z)
		row[ColRotX] = float32(t.Rotation.X)
		row[ColRotY] = float32(t.Rotation.Y)
		row[ColRotZ] = float32(t.Rotation.Z)
		row[ColRotW] = float32(t.Rotation.W)
		row[ColHeight] = float32(t.Height)
		row[ColRadius] = float32(s.Radius)
		row[ColRed] = float32(s.Color.R) / 255
		row[ColGreen] = float32(s.Color.G) / 255
		row[ColBlue] = float32(s.Color.B) / 255
		row[ColAlpha] = float32(s.Color.A) / 255
	}
	return tbl
}

// WriteInstances writes the table as csv, a heading line and then one
// line per segment.
func WriteInstances(w io.Writer, tbl *matrix.FMatrix2d) error {
	if _, err := fmt.Fprintln(w, strings.Join(ColNames[:], ",")); err != nil {
		return err
	}
	for _, row := range tbl.Mat {
		sep := ""
		for _, x := range row {
			if _, err := fmt.Fprintf(w, "%s%g", sep, x); err != nil {
				return err
			}
			sep = ","
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
