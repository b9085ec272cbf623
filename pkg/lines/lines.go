// Package lines reads text a line at a time for the molecule readers.
//
// bufio.Scanner treats a failed read like the end of the input and
// hands back whatever it had as a last line. For us that is a line cut
// in the middle, which often still parses ("12" becomes "1"). Scanner
// here notices the read error and stops before giving out that line.
package lines

import (
	"bufio"
	"io"
)

// MaxLine is the longest line we accept.
const MaxLine = 1024 * 1024

// errReader remembers the first error, other than io.EOF, from the
// reader underneath.
type errReader struct {
	rdr io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.rdr.Read(p)
	if err != nil && err != io.EOF && e.err == nil {
		e.err = err
	}
	return n, err
}

// Scanner counts lines and will not return a line after the reader
// has failed.
type Scanner struct {
	s   *bufio.Scanner
	src *errReader
	n   int
	err error
}

// New starts reading from r.
func New(r io.Reader) *Scanner {
	src := &errReader{rdr: r}
	s := bufio.NewScanner(src)
	s.Buffer(make([]byte, 0, 4096), MaxLine)
	return &Scanner{s: s, src: src}
}

// Scan moves to the next line. It returns false at the end of the
// input or on an error. Err then says which.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}
	ok := sc.s.Scan()
	switch {
	case sc.src.err != nil:
		sc.err = sc.src.err
		return false
	case !ok:
		sc.err = sc.s.Err()
		return false
	}
	sc.n++
	return true
}

// Text is the current line without its line ending.
func (sc *Scanner) Text() string { return sc.s.Text() }

// Line is the number of the current line, counting from 1.
func (sc *Scanner) Line() int { return sc.n }

// Err is the read error that stopped us, or nil if we came to the end
// of the input.
func (sc *Scanner) Err() error { return sc.err }
