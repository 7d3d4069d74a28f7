package engine

import (
	"strconv"
	"strings"
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	// RejectDuplicates fails on a key repeated within one object.
	RejectDuplicates bool
	// MaxDepth bounds container nesting; 0 means unlimited.
	MaxDepth int
}

// IssueError reports an enforcement failure at a JSON pointer.
type IssueError struct {
	Code    string
	Path    string
	Message string
}

func (e *IssueError) Error() string { return e.Path + ": " + e.Message }

const (
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	key          string
	nextIndex    int
}

// WrapWithEnforcement returns a TokenSource that applies opt while streaming.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return tok, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		if e.opt.MaxDepth > 0 && len(e.stack) >= e.opt.MaxDepth {
			return tok, &IssueError{Code: CodeTooDeep, Path: path, Message: "nesting exceeds " + strconv.Itoa(e.opt.MaxDepth)}
		}
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.RejectDuplicates {
				return tok, &IssueError{Code: CodeDuplicateKey, Path: top.path + "/" + escapePointer(tok.String), Message: "key '" + tok.String + "' duplicated"}
			}
			top.keys[tok.String] = struct{}{}
			top.expectingKey = false
			top.key = tok.String
		}
	default:
		e.valuePath()
		e.valueDone()
	}
	return tok, nil
}

// valuePath returns the pointer of the value about to be read.
func (e *enforcingTokenSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.kind == kindArray {
		p := top.path + "/" + strconv.Itoa(top.nextIndex)
		top.nextIndex++
		return p
	}
	return top.path + "/" + escapePointer(top.key)
}

func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject {
			top.expectingKey = true
		}
	}
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
