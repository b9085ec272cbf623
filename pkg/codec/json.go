package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/andrew-torda/molbond/pkg/bond"
)

// JSONCodec writes indented JSON.
type JSONCodec struct{}

func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

func (c *JSONCodec) Format() string { return "json" }

func (c *JSONCodec) Export(scene *bond.Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDoc(scene)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (c *JSONCodec) Parse(r io.Reader) (*SceneDoc, error) {
	var doc SceneDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &doc, nil
}
