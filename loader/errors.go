package loader

import "fmt"

// UnknownFormatError indicates a file extension with no registered backend.
type UnknownFormatError struct {
	Ext string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unsupported file extension: %q", e.Ext)
}

// SchemaError indicates a structurally unusable input: a missing x/y
// column, or a declared column type the coercion table cannot handle.
type SchemaError struct {
	Column   string
	Expected string
	Found    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q: expected %s, found %s", e.Column, e.Expected, e.Found)
}

// ParseError indicates a cell whose content does not parse as its required
// type. Row is zero-based over data rows.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ParseError struct {
	Row    int
	Column string
	Token  string
	cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %q: cannot parse %q", e.Row, e.Column, e.Token)
}

func (e *ParseError) Unwrap() error { return e.cause }

// LengthMismatchError indicates a record whose x and y sequences differ in
// length.
type LengthMismatchError struct {
	Row  int
	XLen int
	YLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("row %d: x has %d values but y has %d", e.Row, e.XLen, e.YLen)
}

// UnsupportedTypeError indicates a physical column type with no coercion
// rule.
type UnsupportedTypeError struct {
	Column string
	Kind   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("column %q: unsupported type %s", e.Column, e.Kind)
}
