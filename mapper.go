package yangwire

import (
	"reflect"
)

// Mapper converts registered Go values to wire trees and back. It keeps no
// per-call state, so one Mapper may serve concurrent callers.
type Mapper struct {
	reg       *Registry
	cfg       Config
	naming    *Naming
	overrides *Overrides
	ns        *NamespaceResolver
}

// NewMapper freezes reg if needed and binds it to cfg.
func NewMapper(reg *Registry, cfg Config) (*Mapper, error) {
	if reg == nil {
		return nil, NewError(CodeInvalidInput).Detail("registry is nil").Build()
	}
	if err := reg.Freeze(); err != nil {
		return nil, err
	}
	if cfg.Naming == nil {
		cfg.Naming = DefaultNaming()
	}
	if cfg.Overrides == nil {
		cfg.Overrides = NewOverrides()
	}
	return &Mapper{
		reg:       reg,
		cfg:       cfg,
		naming:    cfg.Naming,
		overrides: cfg.Overrides,
		ns:        NewNamespaceResolver(cfg.NamespaceFallback, cfg.SuppressNamespaceUnder),
	}, nil
}

// MustMapper is NewMapper that panics on error.
func MustMapper(reg *Registry, cfg Config) *Mapper {
	m, err := NewMapper(reg, cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// Registry returns the bound registry.
func (m *Mapper) Registry() *Registry { return m.reg }

// Config returns the construction-time configuration.
func (m *Mapper) Config() Config { return m.cfg }

// Namespaces returns the namespace resolver.
func (m *Mapper) Namespaces() *NamespaceResolver { return m.ns }

// WireName returns the wire name of field f of owner: the override name, then
// the struct tag, then the naming strategy.
func (m *Mapper) WireName(owner *TypeDescriptor, f *FieldDescriptor) string {
	if ov, ok := m.overrides.lookup(owner.GoType, f); ok && ov.Name != nil {
		return ov.Name(f.Ident)
	}
	if f.Tag != "" {
		return f.Tag
	}
	return m.naming.ToWireName(f.Ident)
}

// RootName returns the element name used for a top-level value of t.
func (m *Mapper) RootName(t reflect.Type) (string, error) {
	d, err := m.reg.Describe(t)
	if err != nil {
		return "", err
	}
	return rootName(d), nil
}

func rootName(d *TypeDescriptor) string {
	if d.QName.Name != "" {
		return d.QName.Name
	}
	return Kebab(d.GoType.Name())
}
