package yangwire_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yangwire "github.com/reoring/yangwire"
)

func TestElement_Members(t *testing.T) {
	root := yangwire.NewElement("interface").Append(
		&yangwire.Element{Name: "name", Text: "x"},
		&yangwire.Element{Name: "type", Text: "opticalTransport", Prefix: "a", Module: "iana-if-type", Namespace: "urn:iana"},
		&yangwire.Element{Name: "administrative-state", Text: "inService", Module: "common", Namespace: "urn:common"},
		(&yangwire.Element{Name: "ots", Module: "ots", Namespace: "urn:ots"}).Append(yangwire.NewElement("fiber-type")),
		&yangwire.Element{Name: "supporting-interface-list", Text: "a", List: true},
		&yangwire.Element{Name: "alias", Text: "p"},
		&yangwire.Element{Name: "alias", Text: "q"},
		&yangwire.Element{Name: "clli", Null: true},
		&yangwire.Element{Name: "box", Module: "aug", Container: true},
	)
	ms := root.Members("device")
	keys := make([]string, 0, len(ms))
	for _, m := range ms {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"name", "type", "administrative-state", "ots:ots", "supporting-interface-list", "alias", "aug:box"}, keys)
	assert.Equal(t, "device", ms[1].Module)
	assert.Equal(t, "ots", ms[3].Module)
	assert.False(t, ms[0].Array)
	assert.True(t, ms[4].Array)
	assert.True(t, ms[5].Array)
	assert.Len(t, ms[5].Elements, 2)
	assert.Equal(t, "aug", ms[6].Module)
	assert.False(t, root.Children[8].IsLeaf())
	assert.True(t, root.Children[7].IsLeaf())

	assert.Equal(t, "iana-if-type:opticalTransport", root.Children[1].QualifiedText("device"))
	assert.Equal(t, "opticalTransport", root.Children[1].QualifiedText("iana-if-type"))
	assert.Equal(t, "inService", root.Children[2].QualifiedText("device"))
}

func TestElement_Clone(t *testing.T) {
	root := yangwire.NewElement("a").Append(yangwire.NewElement("b").Append(yangwire.NewElement("c")))
	c := root.Clone()
	require.Equal(t, root, c)
	c.Children[0].Name = "changed"
	assert.Equal(t, "b", root.Children[0].Name)
	assert.Nil(t, (*yangwire.Element)(nil).Clone())
}

func TestSplitQualified(t *testing.T) {
	m, n := yangwire.SplitQualified("org-openroadm-device:info")
	assert.Equal(t, "org-openroadm-device", m)
	assert.Equal(t, "info", n)
	m, n = yangwire.SplitQualified("info")
	assert.Empty(t, m)
	assert.Equal(t, "info", n)
}

func TestErrors(t *testing.T) {
	cause := errors.New("bad digit")
	err := yangwire.NewError(yangwire.CodeTypeBuild).
		Path("info", "node-number").
		Type("uint32").
		Detail("cannot parse %q", "x").
		Cause(cause).
		Build()
	assert.Equal(t, `[type_build] at /info/node-number: type uint32 - cannot parse "x" (caused by: bad digit)`, err.Error())
	assert.True(t, errors.Is(err, yangwire.ErrTypeBuild))
	assert.False(t, errors.Is(err, yangwire.ErrEncoding))
	assert.True(t, errors.Is(err, cause))

	iss := yangwire.Issues{
		{Path: "/a", Code: yangwire.CodeTypeBuild},
		{Path: "/b", Code: yangwire.CodeEncoding},
		{Path: "/c", Code: yangwire.CodeEncoding},
		{Path: "/d", Code: yangwire.CodeDepthExceeded},
	}
	assert.Equal(t, "type_build at /a; encoding at /b; encoding at /c; ... (total 4)", iss.Error())
	assert.True(t, iss.Has(yangwire.CodeDepthExceeded))

	got, ok := yangwire.AsIssues(error(iss))
	require.True(t, ok)
	assert.Len(t, got, 4)
	_, ok = yangwire.AsIssues(nil)
	assert.False(t, ok)
	assert.Len(t, yangwire.AppendIssues(nil, iss[0]), 1)
}
