package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/molbond/pkg/bond"
)

// YAMLCodec writes YAML with short vectors kept on one line.
type YAMLCodec struct{}

func NewYAMLCodec() *YAMLCodec { return &YAMLCodec{} }

func (c *YAMLCodec) Format() string { return "yaml" }

func (c *YAMLCodec) Export(scene *bond.Scene, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(ToDoc(scene)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finish YAML: %w", err)
	}
	return nil
}

func (c *YAMLCodec) Parse(r io.Reader) (*SceneDoc, error) {
	var doc SceneDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}
