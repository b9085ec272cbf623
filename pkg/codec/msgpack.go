package codec

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/andrew-torda/molbond/pkg/bond"
)

// MsgPackCodec writes MessagePack, for viewers that want the scene
// small and quick to load.
type MsgPackCodec struct{}

func NewMsgPackCodec() *MsgPackCodec { return &MsgPackCodec{} }

func (c *MsgPackCodec) Format() string { return "msgpack" }

func (c *MsgPackCodec) Export(scene *bond.Scene, w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(ToDoc(scene)); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return nil
}

func (c *MsgPackCodec) Parse(r io.Reader) (*SceneDoc, error) {
	var doc SceneDoc
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse msgpack: %w", err)
	}
	return &doc, nil
}
