package openroadm

import (
	"time"

	yangwire "github.com/reoring/yangwire"
)

// OrgOpenroadmDevice is the top-level container of org-openroadm-device.
type OrgOpenroadmDevice struct {
	Info             *Info
	SharedRiskGroup  []SharedRiskGroup
	Interface        []Interface
	CircuitPacks     []CircuitPacks
	RoadmConnections []RoadmConnections
}

// Info is the device info container.
type Info struct {
	NodeID          *string
	NodeNumber      *uint32
	NodeType        *NodeTypes
	Clli            *string
	Vendor          *string
	Model           *string
	SoftwareVersion *string
	MaxDegrees      *uint16
	MaxSrgs         *uint16
	CurrentDatetime *time.Time
}

// SharedRiskGroup is one shared-risk-group list entry.
type SharedRiskGroup struct {
	SrgNumber                      *uint16
	MaxAddDropPorts                *uint16
	CurrentProvisionedAddDropPorts *uint16
	WavelengthDuplication          *WavelengthDuplication
}

// SharedRiskGroupKey keys SharedRiskGroup.
type SharedRiskGroupKey struct {
	SrgNumber *uint16
}

// Interface is one interface list entry. Optical facets attach through the
// embedded Augmentations.
type Interface struct {
	yangwire.Augmentations

	Name                      *string
	Description               *string
	Type                      yangwire.IdentityRef
	AdministrativeState       *AdminStates
	OperationalState          *State
	CircuitID                 *string
	SupportingCircuitPackName *string
	SupportingPort            *string
	SupportingInterfaceList   []string
}

// InterfaceKey keys Interface.
type InterfaceKey struct {
	Name *string
}

// CircuitPacks is one circuit-packs list entry.
type CircuitPacks struct {
	CircuitPackName     *string
	CircuitPackType     *string
	AdministrativeState *AdminStates
	Location            CircuitPackLocation
}

// CircuitPacksKey keys CircuitPacks.
type CircuitPacksKey struct {
	CircuitPackName *string
}

// CircuitPackLocation is the choice between a shelf slot and a parent pack.
type CircuitPackLocation interface {
	circuitPackLocation()
}

// InShelf places a circuit pack in a shelf slot.
type InShelf struct {
	Shelf   *string
	Slot    *string
	SubSlot *string
}

// InParent places a circuit pack inside another one.
type InParent struct {
	ParentCircuitPack *ParentCircuitPack
}

func (InShelf) circuitPackLocation()  {}
func (InParent) circuitPackLocation() {}

// ParentCircuitPack is the parent-circuit-pack container.
type ParentCircuitPack struct {
	CircuitPackName *string
	CpSlotName      *string
}

// RoadmConnections is one roadm-connections list entry.
type RoadmConnections struct {
	ConnectionName     *string
	OpticalControlMode *OpticalControlMode
	TargetOutputPower  *PowerDBm
	Source             *Source
	Destination        *Destination
}

// RoadmConnectionsKey keys RoadmConnections.
type RoadmConnectionsKey struct {
	ConnectionName *string
}

// Source is the roadm-connections source container.
type Source struct {
	SrcIf *string
}

// Destination is the roadm-connections destination container.
type Destination struct {
	DstIf *string
}

// LedControlInput is the input of the led-control RPC.
type LedControlInput struct {
	ShelfName       *string
	CircuitPackName *string
	Enabled         *bool
}

// LedControlOutput is the output of the led-control RPC.
type LedControlOutput struct {
	Status        *RpcStatus
	StatusMessage *string
}

// Interface1 is the optical-transport facet of Interface.
type Interface1 struct {
	Ots *Ots
}

// Ots is the ots container of the optical-transport facet.
type Ots struct {
	FiberType        *FiberType
	SpanLossReceive  *RatioDB
	SpanLossTransmit *RatioDB
}

// Interface2 is the optical-channel facet of Interface.
type Interface2 struct {
	Och *Och
}

// Och is the och container of the optical-channel facet.
type Och struct {
	Rate          yangwire.IdentityRef
	Frequency     *FrequencyTHz
	TransmitPower *PowerDBm
}
