// Package openroadm carries hand-written bindings for a slice of the
// OpenROADM device model.
package openroadm

import (
	"time"

	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/codec"
)

// Module names and namespaces.
const (
	DeviceModule           = "org-openroadm-device"
	DeviceNamespace        = "http://org/openroadm/device"
	CommonTypesModule      = "org-openroadm-common-types"
	CommonTypesNamespace   = "http://org/openroadm/common-types"
	OpticalTransportModule = "org-openroadm-optical-transport-interfaces"
	OpticalTransportNS     = "http://org/openroadm/optical-transport-interfaces"
	OpticalChannelModule   = "org-openroadm-optical-channel-interfaces"
	OpticalChannelNS       = "http://org/openroadm/optical-channel-interfaces"
	IanaIfTypeModule       = "iana-if-type"
	IanaIfTypeNamespace    = "urn:ietf:params:xml:ns:yang:iana-if-type"
)

// Modules returns fresh module definitions. Each registry needs its own.
func Modules() []*yangwire.Module {
	common := yangwire.NewModule(CommonTypesModule, CommonTypesNamespace,
		yangwire.Revision("2018-10-19"), yangwire.Prefix("org-openroadm-common-types")).
		Add(
			yangwire.Enum(StateInService, StateOutOfService, StateDegraded),
			yangwire.Enum(AdminInService, AdminOutOfService, AdminMaintenance),
			yangwire.Enum(NodeRdm, NodeXpdr, NodeIla),
			yangwire.Enum(ControlPower, ControlGainLoss, ControlOff),
			yangwire.Enum(RpcSuccessful, RpcFailed),
			yangwire.Typedef[RatioDB](),
			yangwire.Typedef[PowerDBm](),
			yangwire.Typedef[FrequencyTHz](yangwire.WithParser(ParseFrequencyTHz)),
			yangwire.Identity[R100G]("R100G"),
			yangwire.Identity[R10G]("R10G"),
		)

	iana := yangwire.NewModule(IanaIfTypeModule, IanaIfTypeNamespace,
		yangwire.Revision("2017-01-19"), yangwire.Prefix("ianaift")).
		Add(
			yangwire.Identity[OpticalTransport]("opticalTransport"),
			yangwire.Identity[OpticalChannel]("opticalChannel"),
			yangwire.Identity[EthernetCsmacd]("ethernetCsmacd"),
			yangwire.Identity[OtnOtu]("otnOtu"),
		)

	device := yangwire.NewModule(DeviceModule, DeviceNamespace,
		yangwire.Revision("2018-10-19"), yangwire.Prefix("org-openroadm-device")).
		Add(
			yangwire.Container[OrgOpenroadmDevice]("org-openroadm-device"),
			yangwire.Container[Info]("info"),
			yangwire.List[SharedRiskGroup, SharedRiskGroupKey]("shared-risk-group"),
			yangwire.List[Interface, InterfaceKey]("interface"),
			yangwire.List[CircuitPacks, CircuitPacksKey]("circuit-packs"),
			yangwire.Choice[CircuitPackLocation](InShelf{}, InParent{}),
			yangwire.Container[ParentCircuitPack]("parent-circuit-pack"),
			yangwire.List[RoadmConnections, RoadmConnectionsKey]("roadm-connections"),
			yangwire.Container[Source]("source"),
			yangwire.Container[Destination]("destination"),
			yangwire.Enum(OnePerSrg, OnePerDegree),
			yangwire.Input[LedControlInput](),
			yangwire.Output[LedControlOutput](),
		)

	ots := yangwire.NewModule(OpticalTransportModule, OpticalTransportNS,
		yangwire.Revision("2018-10-19"), yangwire.Prefix("org-openroadm-optical-transport-interfaces")).
		Add(
			yangwire.Augmentation[Interface1, Interface](),
			yangwire.Container[Ots]("ots"),
			yangwire.Enum(FiberSmf, FiberEleaf, FiberOleaf, FiberDsf, FiberTruewave, FiberTruewavec, FiberUll),
		)

	och := yangwire.NewModule(OpticalChannelModule, OpticalChannelNS,
		yangwire.Revision("2018-10-19"), yangwire.Prefix("org-openroadm-optical-channel-interfaces")).
		Add(
			yangwire.Augmentation[Interface2, Interface](),
			yangwire.Container[Och]("och"),
		)

	return []*yangwire.Module{common, iana, device, ots, och}
}

// NewRegistry registers every OpenROADM module. The registry is not frozen,
// so callers may still register more modules or augmentation rows.
func NewRegistry() (*yangwire.Registry, error) {
	reg := yangwire.NewRegistry()
	for _, m := range Modules() {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Config returns yangwire.DefaultConfig with the date-and-time override for
// time.Time leaves.
func Config() yangwire.Config {
	cfg := yangwire.DefaultConfig()
	yangwire.OverrideType[time.Time](cfg.Overrides, codec.DateAndTime())
	return cfg
}

// NewMapper returns a mapper over a frozen OpenROADM registry.
func NewMapper() (*yangwire.Mapper, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return yangwire.NewMapper(reg, Config())
}
