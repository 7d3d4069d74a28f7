package gojson_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/yangwire/internal/engine"
	"github.com/reoring/yangwire/source/gojson"
)

func kinds(t *testing.T, src eng.TokenSource) ([]eng.Kind, []eng.Token) {
	t.Helper()
	var ks []eng.Kind
	var toks []eng.Token
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			return ks, toks
		}
		require.NoError(t, err)
		ks = append(ks, tok.Kind)
		toks = append(toks, tok)
	}
}

func TestTokens(t *testing.T) {
	ks, toks := kinds(t, gojson.NewBytes([]byte(`{"a":[1.50,"x",true,null],"b":{"c":"d"}}`)))
	assert.Equal(t, []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindBeginArray,
		eng.KindNumber, eng.KindString, eng.KindBool, eng.KindNull,
		eng.KindEndArray,
		eng.KindKey, eng.KindBeginObject, eng.KindKey, eng.KindString, eng.KindEndObject,
		eng.KindEndObject,
	}, ks)
	assert.Equal(t, "a", toks[1].String)
	assert.Equal(t, "1.50", toks[3].Number)
	assert.True(t, toks[5].Bool)
	assert.Equal(t, "b", toks[8].String)
	assert.Equal(t, "d", toks[11].String)
}

func TestReadValue(t *testing.T) {
	src := gojson.NewReader(strings.NewReader(`{"org-openroadm-device:info":{"node-id":"roadm-a","max-degrees":2}}`))
	v, err := eng.ReadValue(src)
	require.NoError(t, err)
	require.Len(t, v.Members, 1)
	info := v.Members[0].Value
	assert.Equal(t, "node-id", info.Members[0].Key)
	assert.Equal(t, "roadm-a", info.Members[0].Value.Text)
	assert.Equal(t, eng.KindNumber, info.Members[1].Value.Kind)
	assert.Equal(t, "2", info.Members[1].Value.Text)
	assert.Equal(t, int64(-1), src.Location())
}

func TestMalformed(t *testing.T) {
	_, err := eng.ReadValue(gojson.NewBytes([]byte(`{"a":`)))
	assert.Error(t, err)
}
