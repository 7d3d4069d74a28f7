// Package engine holds the JSON token model shared by the wire readers.
package engine

import (
	"fmt"
	"io"
)

// Kind is the kind of a JSON token.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "{"
	case KindEndObject:
		return "}"
	case KindBeginArray:
		return "["
	case KindEndArray:
		return "]"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one JSON token. Numbers keep their literal text.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	// Offset is the byte offset when the driver knows it, -1 otherwise.
	Offset int64
}

// TokenSource streams tokens. NextToken returns io.EOF after the last one.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is an order-preserving JSON value.
type Value struct {
	Kind Kind // KindBeginObject, KindBeginArray or a scalar kind
	// Text holds string and number literals; bools are "true" or "false".
	Text    string
	Members []Member
	Items   []*Value
}

// ReadValue reads one complete value from src.
func ReadValue(src TokenSource) (*Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return readValue(src, tok)
}

func readValue(src TokenSource, tok Token) (*Value, error) {
	switch tok.Kind {
	case KindBeginObject:
		return readObject(src)
	case KindBeginArray:
		return readArray(src)
	case KindString:
		return &Value{Kind: KindString, Text: tok.String}, nil
	case KindNumber:
		return &Value{Kind: KindNumber, Text: tok.Number}, nil
	case KindBool:
		text := "false"
		if tok.Bool {
			text = "true"
		}
		return &Value{Kind: KindBool, Text: text}, nil
	case KindNull:
		return &Value{Kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("unexpected %s at offset %d: %w", tok.Kind, tok.Offset, io.ErrUnexpectedEOF)
	}
}

func readObject(src TokenSource) (*Value, error) {
	v := &Value{Kind: KindBeginObject}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, noEOF(err)
		}
		if tok.Kind == KindEndObject {
			return v, nil
		}
		if tok.Kind != KindKey {
			return nil, fmt.Errorf("expected key, got %s", tok.Kind)
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, noEOF(err)
		}
		mv, err := readValue(src, vt)
		if err != nil {
			return nil, err
		}
		v.Members = append(v.Members, Member{Key: tok.String, Value: mv})
	}
}

func readArray(src TokenSource) (*Value, error) {
	v := &Value{Kind: KindBeginArray}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, noEOF(err)
		}
		if tok.Kind == KindEndArray {
			return v, nil
		}
		item, err := readValue(src, tok)
		if err != nil {
			return nil, err
		}
		v.Items = append(v.Items, item)
	}
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
