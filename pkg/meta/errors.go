package meta

import (
	"errors"
	"fmt"
)

// Metadata errors.
var (
	ErrParse = errors.New("meta: parse failure")
	ErrIO    = errors.New("meta: I/O failure")
)

// ParseError reports a metadata file that could not be turned into a record.
// Key is the offending property, empty when the file as a whole is malformed.
type ParseError struct {
	Path string
	Key  string
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<stream>"
	}
	if e.Key != "" {
		return fmt.Sprintf("meta: parsing %s: key %q: %v", where, e.Key, e.Err)
	}
	return fmt.Sprintf("meta: parsing %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// IOError reports a metadata file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("meta: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is matches ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }
