package yangwire

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes shared by Error and Issue.
const (
	CodeClassResolution = "class_resolution"
	CodeTypeBuild       = "type_build"
	CodeDepthExceeded   = "depth_exceeded"
	CodeEncoding        = "encoding"
	CodeInvalidInput    = "invalid_input"
	CodeRegistration    = "registration"
)

// Error is the structured error returned by registry, mapper and path operations.
type Error struct {
	Value  any
	Cause  error
	Code   string
	Type   string
	Detail string
	Path   []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Code)
	b.WriteByte(']')

	if len(e.Path) > 0 {
		b.WriteString(" at /")
		b.WriteString(strings.Join(e.Path, "/"))
	}
	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}
	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrClassResolution = &Error{Code: CodeClassResolution}
	ErrTypeBuild       = &Error{Code: CodeTypeBuild}
	ErrDepthExceeded   = &Error{Code: CodeDepthExceeded}
	ErrEncoding        = &Error{Code: CodeEncoding}
	ErrInvalidInput    = &Error{Code: CodeInvalidInput}
	ErrRegistration    = &Error{Code: CodeRegistration}
)

// ErrorBuilder assembles an *Error.
type ErrorBuilder struct {
	err Error
}

// NewError starts an error with the given code.
func NewError(code string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Code: code}}
}

// Path sets the element path.
func (b *ErrorBuilder) Path(path ...string) *ErrorBuilder {
	b.err.Path = append([]string(nil), path...)
	return b
}

// Type sets the symbolic or Go type name involved.
func (b *ErrorBuilder) Type(name string) *ErrorBuilder {
	b.err.Type = name
	return b
}

// Value records the offending value.
func (b *ErrorBuilder) Value(v any) *ErrorBuilder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail.
func (b *ErrorBuilder) Detail(msg string, args ...any) *ErrorBuilder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *ErrorBuilder) Build() *Error {
	e := b.err
	return &e
}

// Issue is a single recovered failure. The field it belongs to was dropped and
// the walk went on.
type Issue struct {
	Path    string // slash separated element path, e.g. /interface/ots/fiber-type
	Code    string
	Message string
	Cause   error
}

// Issues is a collection of recovered failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Has reports whether any issue carries code.
func (iss Issues) Has(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// issueFrom converts err into an Issue, keeping the code of a structured error.
func issueFrom(path string, code string, err error) Issue {
	var e *Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return Issue{Path: path, Code: code, Message: err.Error(), Cause: err}
}
