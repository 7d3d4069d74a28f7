package openroadm

import (
	"fmt"
	"strconv"
	"strings"
)

// State is org-openroadm-common-types:state.
type State int

const (
	StateInService State = iota + 1
	StateOutOfService
	StateDegraded
)

var stateNames = [...]string{StateInService: "InService", StateOutOfService: "OutOfService", StateDegraded: "Degraded"}

func (s State) EnumName() string { return enumName(stateNames[:], int(s)) }

// AdminStates is org-openroadm-common-types:admin-states.
type AdminStates int

const (
	AdminInService AdminStates = iota + 1
	AdminOutOfService
	AdminMaintenance
)

var adminNames = [...]string{AdminInService: "InService", AdminOutOfService: "OutOfService", AdminMaintenance: "Maintenance"}

func (a AdminStates) EnumName() string { return enumName(adminNames[:], int(a)) }

// NodeTypes is org-openroadm-common-types:node-types.
type NodeTypes int

const (
	NodeRdm NodeTypes = iota + 1
	NodeXpdr
	NodeIla
)

var nodeTypeNames = [...]string{NodeRdm: "Rdm", NodeXpdr: "Xpdr", NodeIla: "Ila"}

func (n NodeTypes) EnumName() string { return enumName(nodeTypeNames[:], int(n)) }

// OpticalControlMode is org-openroadm-common-types:optical-control-mode.
type OpticalControlMode int

const (
	ControlPower OpticalControlMode = iota + 1
	ControlGainLoss
	ControlOff
)

var controlModeNames = [...]string{ControlPower: "Power", ControlGainLoss: "GainLoss", ControlOff: "Off"}

func (m OpticalControlMode) EnumName() string { return enumName(controlModeNames[:], int(m)) }

// RpcStatus is org-openroadm-common-types:rpc-status.
type RpcStatus int

const (
	RpcSuccessful RpcStatus = iota + 1
	RpcFailed
)

var rpcStatusNames = [...]string{RpcSuccessful: "Successful", RpcFailed: "Failed"}

func (s RpcStatus) EnumName() string { return enumName(rpcStatusNames[:], int(s)) }

// FiberType is the fiber-type leaf of the ots container.
type FiberType int

const (
	FiberSmf FiberType = iota + 1
	FiberEleaf
	FiberOleaf
	FiberDsf
	FiberTruewave
	FiberTruewavec
	FiberUll
)

var fiberNames = [...]string{
	FiberSmf: "Smf", FiberEleaf: "Eleaf", FiberOleaf: "Oleaf", FiberDsf: "Dsf",
	FiberTruewave: "Truewave", FiberTruewavec: "Truewavec", FiberUll: "Ull",
}

func (f FiberType) EnumName() string { return enumName(fiberNames[:], int(f)) }

// WavelengthDuplication is the wavelength-duplication leaf of a shared-risk-group.
type WavelengthDuplication int

const (
	OnePerSrg WavelengthDuplication = iota + 1
	OnePerDegree
)

var duplicationNames = [...]string{OnePerSrg: "OnePerSrg", OnePerDegree: "OnePerDegree"}

func (w WavelengthDuplication) EnumName() string { return enumName(duplicationNames[:], int(w)) }

func enumName(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

// RatioDB is org-openroadm-common-types:ratio-dB.
type RatioDB struct {
	Value float64
}

func (r RatioDB) ScalarValue() any { return r.Value }

// PowerDBm is org-openroadm-common-types:power-dBm.
type PowerDBm struct {
	Value float64
}

func (p PowerDBm) ScalarValue() any { return p.Value }

// FrequencyTHz is org-openroadm-common-types:frequency-THz. It is parsed by
// ParseFrequencyTHz, which accepts an optional "THz" suffix.
type FrequencyTHz struct {
	Value float64
}

func (f FrequencyTHz) ScalarValue() any { return f.Value }

// ParseFrequencyTHz parses "196.1" or "196.1THz".
func ParseFrequencyTHz(s string) (FrequencyTHz, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "THz"), 64)
	if err != nil {
		return FrequencyTHz{}, fmt.Errorf("frequency-THz: %w", err)
	}
	return FrequencyTHz{Value: v}, nil
}

// Identities from iana-if-type and org-openroadm-common-types.
type (
	OpticalTransport struct{}
	OpticalChannel   struct{}
	EthernetCsmacd   struct{}
	OtnOtu           struct{}
	R100G            struct{}
	R10G             struct{}
)
