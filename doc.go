// Package yangwire maps Go values of a YANG-modelled data tree to RESTCONF
// wire trees and back, using runtime reflection instead of generated code.
//
// The package provides:
//
// - A Registry of modules: containers, lists, augmentations, choices, identities,
// enumerations and typedefs, compiled once at Register and linked at Freeze
// - A Mapper that encodes values into Element trees with namespace scoping and
// identity prefixes, and decodes trees back, recording dropped fields as Issues
// - Per-type and per-field Overrides for leaf text
//
// Wire formats live in xmlwire, jsonwire and cborwire. Resource paths and the
// RESTCONF client live in restconf.
//
// Typical usage:
//
//	m, err := yangwire.NewMapper(reg, yangwire.DefaultConfig())
//	doc, err := m.Encode(&iface)
//	body, err := jsonwire.Marshal(doc.Root)
//
//	root, err := xmlwire.Unmarshal(data, reg)
//	issues, err := m.Decode(root, &iface)
package yangwire
