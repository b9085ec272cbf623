package resource

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

// GzipReader reads through a decompressor if there is one. Close
// closes the decompressor and then whatever it was reading from.
type GzipReader struct {
	src  io.ReadCloser
	zrdr *gzip.Reader
}

func (g *GzipReader) Read(p []byte) (int, error) {
	if g.zrdr != nil {
		return g.zrdr.Read(p)
	}
	return g.src.Read(p)
}

func (g *GzipReader) Close() error {
	if g.zrdr == nil {
		return g.src.Close()
	}
	return errors.Join(g.zrdr.Close(), g.src.Close())
}

// Wrap puts a decompressor in front of src. It fails if src does not
// start like a gzip stream. src can be a file or an http body.
func Wrap(src io.ReadCloser) (*GzipReader, error) {
	zrdr, err := gzip.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &GzipReader{src: src, zrdr: zrdr}, nil
}

// WrapMaybe looks to see if src is compressed. If not, it rewinds and
// hands back a reader on the plain stream. You lose the ability to
// seek.
func WrapMaybe(src io.ReadSeekCloser) (*GzipReader, error) {
	if g, err := Wrap(src); err == nil {
		return g, nil
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &GzipReader{src: src}, nil
}

var gzMagic = []byte{0x1f, 0x8b}

// IsGzip says if data starts with the gzip magic number.
func IsGzip(data []byte) bool { return bytes.HasPrefix(data, gzMagic) }

// Gunzip decompresses data if it is gzipped, otherwise it is returned
// as it is.
func Gunzip(data []byte) ([]byte, error) {
	if !IsGzip(data) {
		return data, nil
	}
	zrdr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	defer zrdr.Close()
	out, err := io.ReadAll(zrdr)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	return out, nil
}
