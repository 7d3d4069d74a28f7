package restconf

import (
	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/cborwire"
	"github.com/reoring/yangwire/jsonwire"
	"github.com/reoring/yangwire/xmlwire"
)

// Codec turns wire trees into request bodies and response bodies back into
// wire trees.
type Codec interface {
	Name() string
	ContentType() string
	Marshal(root *yangwire.Element) ([]byte, error)
	Unmarshal(data []byte) (*yangwire.Element, error)
	// UnmarshalAll returns one root per top-level entry (leaf-list reads).
	UnmarshalAll(data []byte) ([]*yangwire.Element, error)
}

// JSON returns the RFC 7951 codec. reg resolves module names and may be nil.
func JSON(reg *yangwire.Registry) Codec { return jsonCodec{reg: reg} }

// XML returns the XML codec. reg resolves namespaces and may be nil.
func XML(reg *yangwire.Registry) Codec { return xmlCodec{reg: reg} }

// CBOR returns the CBOR codec. reg resolves module names and may be nil.
func CBOR(reg *yangwire.Registry) Codec { return cborCodec{reg: reg} }

// CodecByName returns the codec called name ("json", "xml" or "cbor").
func CodecByName(name string, reg *yangwire.Registry) (Codec, bool) {
	switch name {
	case "json":
		return JSON(reg), true
	case "xml":
		return XML(reg), true
	case "cbor":
		return CBOR(reg), true
	}
	return nil, false
}

type jsonCodec struct{ reg *yangwire.Registry }

func (jsonCodec) Name() string        { return "json" }
func (jsonCodec) ContentType() string { return jsonwire.ContentType }
func (jsonCodec) Marshal(root *yangwire.Element) ([]byte, error) {
	return jsonwire.Marshal(root)
}
func (c jsonCodec) Unmarshal(data []byte) (*yangwire.Element, error) {
	return jsonwire.Unmarshal(data, lookup(c.reg))
}
func (c jsonCodec) UnmarshalAll(data []byte) ([]*yangwire.Element, error) {
	return jsonwire.UnmarshalAll(data, lookup(c.reg))
}

type xmlCodec struct{ reg *yangwire.Registry }

func (xmlCodec) Name() string        { return "xml" }
func (xmlCodec) ContentType() string { return xmlwire.ContentType }
func (xmlCodec) Marshal(root *yangwire.Element) ([]byte, error) {
	return xmlwire.Marshal(root)
}
func (c xmlCodec) Unmarshal(data []byte) (*yangwire.Element, error) {
	return xmlwire.Unmarshal(data, nsLookup(c.reg))
}
func (c xmlCodec) UnmarshalAll(data []byte) ([]*yangwire.Element, error) {
	return xmlwire.UnmarshalAll(data, nsLookup(c.reg))
}

type cborCodec struct{ reg *yangwire.Registry }

func (cborCodec) Name() string        { return "cbor" }
func (cborCodec) ContentType() string { return cborwire.ContentType }
func (cborCodec) Marshal(root *yangwire.Element) ([]byte, error) {
	return cborwire.Marshal(root)
}
func (c cborCodec) Unmarshal(data []byte) (*yangwire.Element, error) {
	return cborwire.Unmarshal(data, lookup(c.reg))
}
func (c cborCodec) UnmarshalAll(data []byte) ([]*yangwire.Element, error) {
	return cborwire.UnmarshalAll(data, lookup(c.reg))
}

// lookup and nsLookup avoid handing a typed nil registry to the wire
// packages.
func lookup(reg *yangwire.Registry) jsonwire.ModuleLookup {
	if reg == nil {
		return nil
	}
	return reg
}

func nsLookup(reg *yangwire.Registry) xmlwire.ModuleLookup {
	if reg == nil {
		return nil
	}
	return reg
}
