// Errors that save where we were when something went wrong.
// The parsers fill out the line number and field, so callers can use
// errors.Is() to find out what kind of problem it was and errors.As()
// to get at the location.
package mol

import (
	"errors"
	"strconv"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrUnresolvedBond   = errors.New("unresolved bond reference")
	ErrEmptyInput       = errors.New("no atoms in input")
	ErrUnknownFormat    = errors.New("cannot recognise format")
)

const maxTokLen = 40

func firstPart(s string) string {
	if len(s) > maxTokLen {
		return s[:maxTokLen] + "..."
	}
	return s
}

// RecordError is a record we found, but could not read.
// Line counts from 1. Field is the index of the whitespace separated
// token, counting from 0, or -1 if the whole line is the problem.
type RecordError struct {
	Line   int
	Field  int
	Token  string
	Reason string
}

func (e *RecordError) Error() string {
	var errmsg string
	if e.Line != 0 {
		errmsg = "line " + strconv.Itoa(e.Line) + " "
	}
	if e.Field >= 0 {
		errmsg += "field " + strconv.Itoa(e.Field) + " "
	}
	errmsg += e.Reason
	if e.Token != "" {
		errmsg += " (" + strconv.Quote(firstPart(e.Token)) + ")"
	}
	return errmsg
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

// DuplicateAtomError says an atom id was seen twice.
// Line is 0 if we do not know where it came from.
type DuplicateAtomError struct {
	ID   int
	Line int
}

func (e *DuplicateAtomError) Error() string {
	s := "duplicate atom id " + strconv.Itoa(e.ID)
	if e.Line != 0 {
		s = "line " + strconv.Itoa(e.Line) + " " + s
	}
	return s
}

func (e *DuplicateAtomError) Unwrap() error { return ErrMalformedRecord }

// BondRefError is an edge pointing at an atom we do not have.
// Edge is the index in the molecule's edge list, or the bond
// line within an sdf bond block, counting from 0.
type BondRefError struct {
	Edge     int
	From, To int
	Missing  int
}

func (e *BondRefError) Error() string {
	return "bond " + strconv.Itoa(e.Edge) + " (" + strconv.Itoa(e.From) + "-" +
		strconv.Itoa(e.To) + ") refers to missing atom " + strconv.Itoa(e.Missing)
}

func (e *BondRefError) Unwrap() error { return ErrUnresolvedBond }

// ResourceError is a named file, bundled resource or remote ligand
// we could not find. Err may carry the underlying cause.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Err == nil {
		return e.Name + ": " + ErrResourceNotFound.Error()
	}
	return e.Name + ": " + ErrResourceNotFound.Error() + ": " + e.Err.Error()
}

func (e *ResourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrResourceNotFound}
	}
	return []error{ErrResourceNotFound, e.Err}
}
