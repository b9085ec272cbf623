// Package brokenio wraps a reader so that it breaks. We use it in
// tests to see that readers of molecule files pass on I/O errors and
// do not turn a half read file into a molecule.
//
// Typical use: r = brokenio.NewReader(strings.NewReader(s), 100)
// gives the first 100 bytes of s and then fails.
package brokenio

import (
	"errors"
	"io"
)

// ErrBroken is what Read returns once the good bytes are used up.
var ErrBroken = errors.New("brokenio: deliberate read failure")

// Reader passes through nGood bytes, then returns ErrBroken forever.
// Reads are also cut to at most chunk bytes, if chunk > 0, so a
// reader on the other side sees lots of short reads.
type Reader struct {
	rdr   io.Reader
	nGood int
	chunk int
	nByte int // bytes handed out so far
}

// NewReader returns a Reader which fails after nGood bytes.
func NewReader(r io.Reader, nGood int) *Reader {
	return &Reader{rdr: r, nGood: nGood}
}

// SetChunk sets the largest read we will return.
func (r *Reader) SetChunk(n int) { r.chunk = n }

// NByte says how many bytes went through.
func (r *Reader) NByte() int { return r.nByte }

func (r *Reader) Read(p []byte) (int, error) {
	left := r.nGood - r.nByte
	if left <= 0 {
		return 0, ErrBroken
	}
	if len(p) > left {
		p = p[:left]
	}
	if r.chunk > 0 && len(p) > r.chunk {
		p = p[:r.chunk]
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	return n, err
}
