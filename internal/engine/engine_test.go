package engine_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/yangwire/internal/engine"
)

type sliceSource struct {
	toks []eng.Token
	i    int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.i >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func obj() eng.Token           { return eng.Token{Kind: eng.KindBeginObject} }
func end() eng.Token           { return eng.Token{Kind: eng.KindEndObject} }
func arr() eng.Token           { return eng.Token{Kind: eng.KindBeginArray} }
func endArr() eng.Token        { return eng.Token{Kind: eng.KindEndArray} }
func key(k string) eng.Token   { return eng.Token{Kind: eng.KindKey, String: k} }
func num(n string) eng.Token   { return eng.Token{Kind: eng.KindNumber, Number: n} }
func str(s string) eng.Token   { return eng.Token{Kind: eng.KindString, String: s} }
func boolean(b bool) eng.Token { return eng.Token{Kind: eng.KindBool, Bool: b} }

func src(t ...eng.Token) *sliceSource { return &sliceSource{toks: t} }

func TestReadValue_PreservesOrder(t *testing.T) {
	v, err := eng.ReadValue(src(
		obj(),
		key("z"), num("1.50"),
		key("a"), arr(), str("x"), boolean(true), eng.Token{Kind: eng.KindNull}, endArr(),
		key("m"), obj(), end(),
		end(),
	))
	require.NoError(t, err)
	require.Equal(t, eng.KindBeginObject, v.Kind)
	require.Len(t, v.Members, 3)
	assert.Equal(t, "z", v.Members[0].Key)
	assert.Equal(t, "1.50", v.Members[0].Value.Text)
	assert.Equal(t, "a", v.Members[1].Key)

	items := v.Members[1].Value.Items
	require.Len(t, items, 3)
	assert.Equal(t, eng.KindString, items[0].Kind)
	assert.Equal(t, "true", items[1].Text)
	assert.Equal(t, eng.KindNull, items[2].Kind)
	assert.Empty(t, v.Members[2].Value.Members)
}

func TestReadValue_Truncated(t *testing.T) {
	_, err := eng.ReadValue(src(obj(), key("a")))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	_, err = eng.ReadValue(src(obj(), num("1")))
	assert.Error(t, err)

	_, err = eng.ReadValue(src())
	assert.Equal(t, io.EOF, err)
}

func TestEnforcement_DuplicateKeyPointer(t *testing.T) {
	toks := []eng.Token{
		obj(), key("items"), arr(),
		obj(), key("x"), num("1"), end(),
		obj(), key("x"), num("1"), key("x"), num("2"), end(),
		endArr(), end(),
	}
	_, err := eng.ReadValue(eng.WrapWithEnforcement(src(toks...), eng.EnforceOptions{RejectDuplicates: true}))
	var ie *eng.IssueError
	require.True(t, errors.As(err, &ie), "got %v", err)
	assert.Equal(t, eng.CodeDuplicateKey, ie.Code)
	assert.Equal(t, "/items/1/x", ie.Path)

	v, err := eng.ReadValue(eng.WrapWithEnforcement(src(toks...), eng.EnforceOptions{}))
	require.NoError(t, err)
	assert.Len(t, v.Members[0].Value.Items[1].Members, 2)
}

func TestEnforcement_EscapesPointerTokens(t *testing.T) {
	toks := []eng.Token{obj(), key("a/b"), obj(), key("~"), num("1"), key("~"), num("2"), end(), end()}
	_, err := eng.ReadValue(eng.WrapWithEnforcement(src(toks...), eng.EnforceOptions{RejectDuplicates: true}))
	var ie *eng.IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "/a~1b/~0", ie.Path)
}

func TestEnforcement_MaxDepth(t *testing.T) {
	toks := []eng.Token{obj(), key("a"), obj(), key("b"), arr(), endArr(), end(), end()}
	_, err := eng.ReadValue(eng.WrapWithEnforcement(src(toks...), eng.EnforceOptions{MaxDepth: 2}))
	var ie *eng.IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, eng.CodeTooDeep, ie.Code)
	assert.Equal(t, "/a/b", ie.Path)

	_, err = eng.ReadValue(eng.WrapWithEnforcement(src(toks...), eng.EnforceOptions{MaxDepth: 3}))
	assert.NoError(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "{", eng.KindBeginObject.String())
	assert.Equal(t, "null", eng.KindNull.String())
	assert.Equal(t, "Kind(42)", eng.Kind(42).String())
}
