// Package element maps element symbols to a display colour and a
// covalent radius. It is a fixed table. Nothing here can fail, so
// anything we do not know about gets the default colour and radius.
package element

import (
	"image/color"
	"strings"
)

// Entry is one row of the table.
type Entry struct {
	Symbol string
	Color  color.RGBA
	Radius float64 // covalent radius in Angstrom
}

// Default is the colour for anything not in the table, including the
// empty string.
var Default = color.RGBA{255, 255, 0, 255}

// DefaultRadius is returned by RadiusFor for unknown symbols.
const DefaultRadius = 0.70

var table = map[string]Entry{
	"H":  {"H", color.RGBA{255, 255, 255, 255}, 0.31},
	"C":  {"C", color.RGBA{128, 128, 128, 255}, 0.76},
	"N":  {"N", color.RGBA{0, 0, 255, 255}, 0.71},
	"O":  {"O", color.RGBA{255, 0, 0, 255}, 0.66},
	"F":  {"F", color.RGBA{0, 255, 0, 255}, 0.57},
	"P":  {"P", color.RGBA{255, 165, 0, 255}, 1.07},
	"S":  {"S", color.RGBA{255, 200, 50, 255}, 1.05},
	"Cl": {"Cl", color.RGBA{31, 240, 31, 255}, 1.02},
	"Br": {"Br", color.RGBA{166, 41, 41, 255}, 1.20},
	"I":  {"I", color.RGBA{148, 0, 148, 255}, 1.39},
	"B":  {"B", color.RGBA{255, 181, 181, 255}, 0.84},
	"Na": {"Na", color.RGBA{171, 92, 242, 255}, 1.66},
	"Mg": {"Mg", color.RGBA{138, 255, 0, 255}, 1.41},
	"K":  {"K", color.RGBA{143, 64, 212, 255}, 2.03},
	"Ca": {"Ca", color.RGBA{61, 255, 0, 255}, 1.76},
	"Fe": {"Fe", color.RGBA{224, 102, 51, 255}, 1.32},
	"Zn": {"Zn", color.RGBA{125, 128, 176, 255}, 1.22},
	"Se": {"Se", color.RGBA{255, 161, 0, 255}, 1.20},
}

// normalise turns "cl", "CL" or "cL" into "Cl".
func normalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Lookup returns the table entry for a symbol. Case does not matter.
func Lookup(symbol string) (Entry, bool) {
	e, ok := table[normalise(symbol)]
	return e, ok
}

// ColorFor returns the display colour of an element symbol.
func ColorFor(symbol string) color.RGBA {
	if e, ok := Lookup(symbol); ok {
		return e.Color
	}
	return Default
}

// RadiusFor returns the covalent radius of an element symbol.
func RadiusFor(symbol string) float64 {
	if e, ok := Lookup(symbol); ok {
		return e.Radius
	}
	return DefaultRadius
}

// Symbol reduces an atom name, as it appears in a PDB file, to an
// element symbol. "C1" becomes "C", "CL3" becomes "Cl" and "O3'"
// becomes "O". We take the leading letters and try them as a whole,
// then just the first letter. If neither is known, the normalised
// letters come back and will get the default colour.
//
// Names are not read by column, so we cannot tell an alpha carbon
// "CA" from calcium or a haem nitrogen "NA" from sodium. The whole
// letters win: "CA" is Ca and "NA" is Na. Ligand files that want
// carbon and nitrogen should number them, "C1" or "N1".
func Symbol(name string) string {
	n := 0
	for n < len(name) && isLetter(name[n]) {
		n++
	}
	letters := name[:n]
	if letters == "" {
		return ""
	}
	if _, ok := Lookup(letters); ok {
		return normalise(letters)
	}
	if _, ok := Lookup(letters[:1]); ok {
		return normalise(letters[:1])
	}
	return normalise(letters)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
