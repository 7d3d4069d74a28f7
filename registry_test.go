package yangwire_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/openroadm"
)

func TestRegistry_Resolve(t *testing.T) {
	reg := frozenRegistry(t)

	d, err := reg.Resolve("Interface")
	require.NoError(t, err)
	assert.Equal(t, "org-openroadm-device.Interface", d.Name)
	assert.Equal(t, yangwire.KindNested, d.Kind)
	assert.Equal(t, "interface", d.QName.Name)
	assert.Equal(t, openroadm.DeviceNamespace, d.QName.Namespace)

	d, err = reg.Resolve("org-openroadm-optical-transport-interfaces.Interface1")
	require.NoError(t, err)
	assert.Equal(t, yangwire.KindFacet, d.Kind)

	d, err = reg.Resolve("github.com/reoring/yangwire/openroadm.Info")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[openroadm.Info](), d.GoType)

	_, err = reg.Resolve("NoSuchType")
	require.Error(t, err)
	assert.True(t, errors.Is(err, yangwire.ErrClassResolution))
}

func TestRegistry_SecondaryResolver(t *testing.T) {
	primary := yangwire.NewRegistry()
	primary.WithSecondary(frozenRegistry(t))
	d, err := primary.Resolve("Info")
	require.NoError(t, err)
	assert.Equal(t, "org-openroadm-device.Info", d.Name)
}

func TestRegistry_Classification(t *testing.T) {
	reg := frozenRegistry(t)

	iface, err := yangwire.DescriptorOf[openroadm.Interface](reg)
	require.NoError(t, err)
	assert.True(t, iface.Augmentable())

	kinds := map[string]yangwire.Kind{
		"Name":                    yangwire.KindScalar,
		"Type":                    yangwire.KindIdentity,
		"AdministrativeState":     yangwire.KindEnum,
		"SupportingInterfaceList": yangwire.KindList,
	}
	for name, want := range kinds {
		f, ok := iface.Field(name)
		require.True(t, ok, name)
		assert.Equal(t, want, f.Kind, name)
	}
	f, _ := iface.Field("SupportingInterfaceList")
	assert.Equal(t, yangwire.KindScalar, f.ElemKind)

	cp, err := yangwire.DescriptorOf[openroadm.CircuitPacks](reg)
	require.NoError(t, err)
	loc, ok := cp.Field("Location")
	require.True(t, ok)
	assert.Equal(t, yangwire.KindChoice, loc.Kind)
	require.Len(t, loc.Desc.Cases, 2)
	assert.Equal(t, "org-openroadm-device.InShelf", loc.Desc.Cases[0].Name)

	rc, err := yangwire.DescriptorOf[openroadm.RoadmConnections](reg)
	require.NoError(t, err)
	power, _ := rc.Field("TargetOutputPower")
	assert.Equal(t, yangwire.KindTypedScalar, power.Kind)

	info, err := yangwire.DescriptorOf[openroadm.Info](reg)
	require.NoError(t, err)
	dt, _ := info.Field("currentDatetime")
	assert.Equal(t, yangwire.KindScalar, dt.Kind)
}

func TestRegistry_FacetsInDeclarationOrder(t *testing.T) {
	reg := frozenRegistry(t)
	facets := reg.Facets(reflect.TypeFor[openroadm.Interface]())
	require.Len(t, facets, 2)
	assert.Equal(t, reflect.TypeFor[openroadm.Interface1](), facets[0].GoType)
	assert.Equal(t, reflect.TypeFor[openroadm.Interface2](), facets[1].GoType)
}

func TestRegistry_AugmentRowsAreNotDuplicated(t *testing.T) {
	reg, err := openroadm.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.Augment("Interface", "Interface1", "Interface2"))
	require.NoError(t, reg.Freeze())
	assert.Len(t, reg.Facets(reflect.TypeFor[openroadm.Interface]()), 2)
}

func TestRegistry_AugmentRejectsNonFacet(t *testing.T) {
	reg, err := openroadm.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.Augment("Interface", "Info"))
	err = reg.Freeze()
	require.Error(t, err)
	assert.True(t, errors.Is(err, yangwire.ErrRegistration))
}

func TestRegistry_RegistrationErrors(t *testing.T) {
	t.Run("duplicate module", func(t *testing.T) {
		reg, err := openroadm.NewRegistry()
		require.NoError(t, err)
		err = reg.Register(openroadm.Modules()[0])
		assert.True(t, errors.Is(err, yangwire.ErrRegistration))
	})
	t.Run("go type bound twice", func(t *testing.T) {
		reg, err := openroadm.NewRegistry()
		require.NoError(t, err)
		other := yangwire.NewModule("other", "urn:other").Add(yangwire.Container[openroadm.Info]("info"))
		err = reg.Register(other)
		assert.True(t, errors.Is(err, yangwire.ErrRegistration))
	})
	t.Run("frozen", func(t *testing.T) {
		reg := frozenRegistry(t)
		err := reg.Register(yangwire.NewModule("late", "urn:late"))
		assert.True(t, errors.Is(err, yangwire.ErrRegistration))
		assert.True(t, errors.Is(reg.Augment("Interface", "Interface1"), yangwire.ErrRegistration))
	})
	t.Run("typedef without scalar value", func(t *testing.T) {
		type plain struct{ V int }
		reg := yangwire.NewRegistry()
		err := reg.Register(yangwire.NewModule("m", "urn:m").Add(yangwire.Typedef[plain]()))
		assert.True(t, errors.Is(err, yangwire.ErrRegistration))
	})
	t.Run("choice case outside the interface", func(t *testing.T) {
		type stray struct{ V *string }
		reg := yangwire.NewRegistry()
		err := reg.Register(yangwire.NewModule("m", "urn:m").
			Add(yangwire.Choice[openroadm.CircuitPackLocation](openroadm.InShelf{}, stray{})))
		assert.True(t, errors.Is(err, yangwire.ErrRegistration))
	})
	t.Run("augmentation of a plain owner", func(t *testing.T) {
		type owner struct{ V *string }
		type facet struct{ W *string }
		reg := yangwire.NewRegistry()
		require.NoError(t, reg.Register(yangwire.NewModule("m", "urn:m").Add(
			yangwire.Container[owner]("owner"),
			yangwire.Augmentation[facet, owner](),
		)))
		assert.True(t, errors.Is(reg.Freeze(), yangwire.ErrRegistration))
	})
}

type unboundLeaf struct{ X int }

type holder struct {
	Inner *unboundLeaf
}

func TestRegistry_UnregisteredFieldType(t *testing.T) {
	reg := yangwire.NewRegistry()
	require.NoError(t, reg.Register(yangwire.NewModule("m", "urn:m").Add(yangwire.Container[holder]("holder"))))
	err := reg.Freeze()
	require.Error(t, err)
	assert.True(t, errors.Is(err, yangwire.ErrClassResolution))
	assert.False(t, reg.Frozen())
}

func TestRegistry_ModuleLookups(t *testing.T) {
	reg := frozenRegistry(t)
	m, ok := reg.ModuleByNamespace(openroadm.IanaIfTypeNamespace)
	require.True(t, ok)
	assert.Equal(t, openroadm.IanaIfTypeModule, m.Name)
	m, ok = reg.ModuleByName(openroadm.DeviceModule)
	require.True(t, ok)
	assert.Equal(t, "2018-10-19", m.Revision)
	_, ok = reg.ModuleByName("ietf-interfaces")
	assert.False(t, ok)
	assert.Len(t, reg.Modules(), 5)
}
