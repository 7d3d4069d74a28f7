package yangwire_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/openroadm"
)

// newMapper returns an OpenROADM mapper that leaves nil fields out.
func newMapper(t *testing.T) *yangwire.Mapper {
	t.Helper()
	reg, err := openroadm.NewRegistry()
	require.NoError(t, err)
	cfg := openroadm.Config()
	cfg.ExcludeNullValues = true
	m, err := yangwire.NewMapper(reg, cfg)
	require.NoError(t, err)
	return m
}

func frozenRegistry(t *testing.T) *yangwire.Registry {
	t.Helper()
	reg, err := openroadm.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.Freeze())
	return reg
}

func ptr[T any](v T) *T { return &v }

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// dump renders a tree or value for failure messages.
func dump(v any) string { return dumper.Sdump(v) }

// child walks el by element names.
func child(t *testing.T, el *yangwire.Element, names ...string) *yangwire.Element {
	t.Helper()
	cur := el
	for _, n := range names {
		next := cur.Child(n)
		require.NotNil(t, next, "no %q under %q", n, cur.Name)
		cur = next
	}
	return cur
}

func otsInterface() openroadm.Interface {
	return openroadm.Interface{
		Augmentations: yangwire.NewAugmentations(openroadm.Interface1{
			Ots: &openroadm.Ots{
				FiberType:       ptr(openroadm.FiberSmf),
				SpanLossReceive: &openroadm.RatioDB{Value: 12.5},
			},
		}),
		Name:                    ptr("ots-deg1"),
		Type:                    yangwire.IdentityOf[openroadm.OpticalTransport](),
		AdministrativeState:     ptr(openroadm.AdminInService),
		SupportingInterfaceList: []string{"oms-deg1", "och-1"},
	}
}
