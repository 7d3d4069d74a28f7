package yangwire_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/openroadm"
	"github.com/reoring/yangwire/xmlwire"
)

func leaf(name, text string) *yangwire.Element {
	return &yangwire.Element{Name: name, Text: text}
}

func TestDecode_RoundTrip(t *testing.T) {
	m := newMapper(t)
	in := otsInterface()
	doc, err := m.Encode(&in)
	require.NoError(t, err)

	var out openroadm.Interface
	issues, err := m.Decode(doc.Root, &out)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, in, out, dump(doc.Root))

	ots, ok := yangwire.AugmentationOf[openroadm.Interface1](out)
	require.True(t, ok)
	assert.Equal(t, openroadm.FiberSmf, *ots.Ots.FiberType)
	_, ok = yangwire.AugmentationOf[openroadm.Interface2](out)
	assert.False(t, ok)
	assert.Equal(t, []string{"oms-deg1", "och-1"}, out.SupportingInterfaceList)
}

func TestDecode_RoundTripThroughXML(t *testing.T) {
	m := newMapper(t)
	in := otsInterface()
	doc, err := m.Encode(&in)
	require.NoError(t, err)
	b, err := xmlwire.Marshal(doc.Root)
	require.NoError(t, err)

	root, err := xmlwire.Unmarshal(b, m.Registry())
	require.NoError(t, err)
	var out openroadm.Interface
	issues, err := m.Decode(root, &out)
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.Equal(t, *in.Name, *out.Name)
	assert.Equal(t, in.Type, out.Type)
	assert.Equal(t, *in.AdministrativeState, *out.AdministrativeState)
	assert.Equal(t, in.SupportingInterfaceList, out.SupportingInterfaceList)
	ots, ok := yangwire.AugmentationOf[openroadm.Interface1](out)
	require.True(t, ok, string(b))
	assert.Equal(t, openroadm.FiberSmf, *ots.Ots.FiberType)
	assert.Equal(t, openroadm.RatioDB{Value: 12.5}, *ots.Ots.SpanLossReceive)
	assert.Equal(t, in, out, string(b))
}

func TestDecode_DepthGuard(t *testing.T) {
	m := chainMapper(t)
	root := yangwire.NewElement("chain")
	cur := root
	for i := 0; i < 20; i++ {
		next := yangwire.NewElement("next")
		cur.Append(leaf("label", "n"), next)
		cur = next
	}

	var out chain
	issues, err := m.Decode(root, &out)
	require.NoError(t, err)
	assert.True(t, issues.Has(yangwire.CodeDepthExceeded))

	labelled := 0
	for c := &out; c != nil; c = c.Next {
		if c.Label != nil {
			labelled++
		}
	}
	assert.Equal(t, yangwire.MaxDepth+1, labelled)
}

func TestDecode_Resolvers(t *testing.T) {
	m := newMapper(t)
	el := yangwire.NewElement("interface").Append(
		leaf("name", "och-1"),
		&yangwire.Element{Name: "type", Text: "opticalChannel", Prefix: "x", Module: openroadm.IanaIfTypeModule},
		leaf("administrative-state", "org-openroadm-common-types:outOfService"),
		leaf("operational-state", "degraded"),
		yangwire.NewElement("och").Append(
			leaf("rate", "org-openroadm-common-types:R10G"),
			leaf("frequency", "196.1THz"),
			leaf("transmit-power", "-3.5"),
		),
	)
	var out openroadm.Interface
	issues, err := m.Decode(el, &out)
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.Equal(t, "och-1", *out.Name)
	assert.Equal(t, yangwire.IdentityOf[openroadm.OpticalChannel](), out.Type)
	assert.Equal(t, openroadm.AdminOutOfService, *out.AdministrativeState)
	assert.Equal(t, openroadm.StateDegraded, *out.OperationalState)

	och, ok := yangwire.AugmentationOf[openroadm.Interface2](out)
	require.True(t, ok)
	assert.Equal(t, yangwire.IdentityOf[openroadm.R10G](), och.Och.Rate)
	assert.Equal(t, openroadm.FrequencyTHz{Value: 196.1}, *och.Och.Frequency)
	assert.Equal(t, openroadm.PowerDBm{Value: -3.5}, *och.Och.TransmitPower)
}

func TestDecode_BadLeavesAreDropped(t *testing.T) {
	m := newMapper(t)
	el := yangwire.NewElement("info").Append(
		leaf("node-id", "roadm-a"),
		leaf("node-number", "not-a-number"),
		leaf("node-type", "spaceship"),
		leaf("max-degrees", "4"),
	)
	var out openroadm.Info
	issues, err := m.Decode(el, &out)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "/info/node-number", issues[0].Path)
	assert.Equal(t, yangwire.CodeTypeBuild, issues[0].Code)
	assert.Equal(t, "/info/node-type", issues[1].Path)

	assert.Equal(t, "roadm-a", *out.NodeID)
	assert.Nil(t, out.NodeNumber)
	assert.Nil(t, out.NodeType)
	assert.Equal(t, uint16(4), *out.MaxDegrees)
}

func TestDecode_DateAndTime(t *testing.T) {
	m := newMapper(t)
	el := yangwire.NewElement("info").Append(leaf("current-datetime", "2024-05-01T03:00:00.5Z"))
	var out openroadm.Info
	issues, err := m.Decode(el, &out)
	require.NoError(t, err)
	assert.Empty(t, issues)
	want := time.Date(2024, 5, 1, 3, 0, 0, 500_000_000, time.UTC)
	assert.True(t, want.Equal(*out.CurrentDatetime))
}

func TestDecode_Choice(t *testing.T) {
	m := newMapper(t)
	el := yangwire.NewElement("circuit-packs").Append(
		leaf("circuit-pack-name", "1/0/1"),
		yangwire.NewElement("parent-circuit-pack").Append(leaf("circuit-pack-name", "1/0")),
	)
	var out openroadm.CircuitPacks
	_, err := m.Decode(el, &out)
	require.NoError(t, err)
	parent, ok := out.Location.(openroadm.InParent)
	require.True(t, ok, "got %T", out.Location)
	assert.Equal(t, "1/0", *parent.ParentCircuitPack.CircuitPackName)

	el = yangwire.NewElement("circuit-packs").Append(leaf("shelf", "2"))
	out = openroadm.CircuitPacks{}
	_, err = m.Decode(el, &out)
	require.NoError(t, err)
	assert.Equal(t, openroadm.InShelf{Shelf: ptr("2")}, out.Location)
}

func TestDecode_ListsAndCamelCaseNames(t *testing.T) {
	m := newMapper(t)
	el := yangwire.NewElement("org-openroadm-device").Append(
		&yangwire.Element{Name: "sharedRiskGroup", List: true, Children: []*yangwire.Element{leaf("srgNumber", "1")}},
		&yangwire.Element{Name: "shared-risk-group", List: true, Children: []*yangwire.Element{
			leaf("srg-number", "2"),
			leaf("wavelength-duplication", "onePerDegree"),
		}},
	)
	var out openroadm.OrgOpenroadmDevice
	issues, err := m.Decode(el, &out)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, out.SharedRiskGroup, 2)
	assert.Equal(t, uint16(1), *out.SharedRiskGroup[0].SrgNumber)
	assert.Equal(t, openroadm.OnePerDegree, *out.SharedRiskGroup[1].WavelengthDuplication)
}

func TestDecode_IdentityAliases(t *testing.T) {
	reg, err := openroadm.NewRegistry()
	require.NoError(t, err)
	cfg := openroadm.Config()
	cfg.IdentityAliases = map[string]string{"if-ots": "OpticalTransport"}
	m, err := yangwire.NewMapper(reg, cfg)
	require.NoError(t, err)

	ref, err := m.ResolveIdentity("ianaift:if-ots")
	require.NoError(t, err)
	assert.Equal(t, yangwire.IdentityOf[openroadm.OpticalTransport](), ref)

	ref, err = m.ResolveIdentity("org.opendaylight.iana.ethernetCsmacd")
	require.NoError(t, err)
	assert.Equal(t, yangwire.IdentityOf[openroadm.EthernetCsmacd](), ref)

	ref, err = m.ResolveIdentity("otn-Otu")
	require.NoError(t, err)
	assert.Equal(t, yangwire.IdentityOf[openroadm.OtnOtu](), ref)

	_, err = m.ResolveIdentity("Info")
	assert.True(t, errors.Is(err, yangwire.ErrTypeBuild))
	_, err = m.ResolveIdentity("unknownThing")
	assert.True(t, errors.Is(err, yangwire.ErrTypeBuild))
}

func TestDecode_Leaves(t *testing.T) {
	m := newMapper(t)
	els := []*yangwire.Element{leaf("supporting-interface-list", "a"), {Name: "x", Null: true}, leaf("supporting-interface-list", "b")}
	got, issues := yangwire.DecodeLeaves[string](m, els)
	assert.Empty(t, issues)
	assert.Equal(t, []string{"a", "b"}, got)

	states, issues := yangwire.DecodeLeaves[openroadm.State](m, []*yangwire.Element{leaf("s", "inService"), leaf("s", "bogus")})
	assert.Equal(t, []openroadm.State{openroadm.StateInService}, states)
	assert.Len(t, issues, 1)
}

func TestDecode_InvalidTargets(t *testing.T) {
	m := newMapper(t)
	el := yangwire.NewElement("info")
	var info openroadm.Info
	_, err := m.Decode(el, info)
	assert.True(t, errors.Is(err, yangwire.ErrInvalidInput))
	_, err = m.Decode(nil, &info)
	assert.True(t, errors.Is(err, yangwire.ErrInvalidInput))
	var state openroadm.State
	_, err = m.Decode(el, &state)
	assert.True(t, errors.Is(err, yangwire.ErrInvalidInput))

	var p *openroadm.Info
	_, err = m.Decode(yangwire.NewElement("info").Append(leaf("vendor", "acme")), &p)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "acme", *p.Vendor)
}

func TestFacetsOf(t *testing.T) {
	m := newMapper(t)
	och := openroadm.Interface2{Och: &openroadm.Och{TransmitPower: &openroadm.PowerDBm{Value: 1}}}
	iface := openroadm.Interface{Augmentations: yangwire.NewAugmentations(och, struct{ Stray bool }{true})}

	facets := m.FacetsOf(&iface)
	require.Len(t, facets, 1)
	assert.Equal(t, och, facets[0])

	assert.Empty(t, m.FacetsOf(openroadm.Interface{}))
	assert.Empty(t, m.FacetsOf(openroadm.Info{}))
	assert.Nil(t, m.FacetsOf(nil))
}
