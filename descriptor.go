package yangwire

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
)

// TypeDescriptor is the compiled form of a registered type.
type TypeDescriptor struct {
	// Name is the module-qualified symbolic name, e.g. org-openroadm-device.Interface.
	Name    string
	GoType  reflect.Type
	QName   QName
	Kind    Kind
	Module  string
	ChildOf bool

	Fields []*FieldDescriptor
	Cases  []*TypeDescriptor
	Key    reflect.Type
	Owner  reflect.Type

	nameField []int
	augIndex  []int
	enum      map[string]reflect.Value
	parser    func(string) (reflect.Value, error)
	parse     func(string) (reflect.Value, error)
}

// FieldDescriptor describes one data field of a nested type.
type FieldDescriptor struct {
	GoName string
	Ident  string
	Tag    string
	Index  []int
	Type   reflect.Type

	// Kind is the field classification. For lists ElemKind and Elem describe
	// the entries.
	Kind     Kind
	Elem     reflect.Type
	ElemKind Kind
	Desc     *TypeDescriptor
}

// Augmentable reports whether values of d carry an Augmentations field.
func (d *TypeDescriptor) Augmentable() bool { return d.augIndex != nil }

// Field returns the field with the given Go name or identifier.
func (d *TypeDescriptor) Field(name string) (*FieldDescriptor, bool) {
	for _, f := range d.Fields {
		if f.GoName == name || f.Ident == name || f.Tag == name {
			return f, true
		}
	}
	return nil, false
}

// EnumValues returns the registered names of an enum descriptor.
func (d *TypeDescriptor) EnumValues() []string {
	out := make([]string, 0, len(d.enum))
	for _, v := range d.enum {
		out = append(out, v.Interface().(Enumeration).EnumName())
	}
	return out
}

func (d *TypeDescriptor) String() string { return d.Name + " (" + d.Kind.String() + ")" }

var (
	enumerationType     = reflect.TypeFor[Enumeration]()
	typedScalarType     = reflect.TypeFor[TypedScalar]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
)

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

// compile turns one spec into descriptors. Choices also yield their cases.
func compile(m *Module, s TypeSpec) ([]*TypeDescriptor, error) {
	t := s.goType
	d := &TypeDescriptor{
		Name:    m.Name + "." + t.Name(),
		GoType:  t,
		Kind:    s.kind,
		Module:  m.Name,
		ChildOf: s.childOf,
		Key:     s.key,
		Owner:   s.owner,
	}
	if s.local != "" {
		d.QName = m.QName(s.local)
	}
	fail := func(format string, args ...any) ([]*TypeDescriptor, error) {
		return nil, NewError(CodeRegistration).Type(d.Name).Detail(format, args...).Build()
	}

	switch s.kind {
	case KindNested, KindFacet:
		if t.Kind() != reflect.Struct {
			return fail("expected struct, got %s", t.Kind())
		}
		if s.kind == KindFacet {
			if s.owner == nil || s.owner.Kind() != reflect.Struct {
				return fail("augmentation owner must be a struct")
			}
			d.QName = QName{Namespace: m.Namespace, Revision: m.Revision, Module: m.Name}
		}
		compileFields(d)
	case KindEnum:
		d.enum = make(map[string]reflect.Value, len(s.values))
		for _, v := range s.values {
			name := v.(Enumeration).EnumName()
			d.enum[strings.ToLower(name)] = reflect.ValueOf(v)
		}
	case KindTypedScalar:
		if !implements(t, typedScalarType) {
			return fail("%s does not implement TypedScalar", t)
		}
		if s.parser != nil && s.parserT != t {
			return fail("parser builds %s", s.parserT)
		}
		d.parser = s.parser
	case KindChoice:
		if t.Kind() != reflect.Interface {
			return fail("choice must be an interface type")
		}
		out := []*TypeDescriptor{d}
		for _, ct := range s.cases {
			if !implements(ct, t) {
				return fail("case %s does not implement %s", ct, t)
			}
			cd := &TypeDescriptor{Name: m.Name + "." + ct.Name(), GoType: ct, Kind: KindNested, Module: m.Name}
			compileFields(cd)
			d.Cases = append(d.Cases, cd)
			out = append(out, cd)
		}
		return out, nil
	case KindIdentity:
		if d.QName.Name == "" {
			return fail("identity needs a name")
		}
	default:
		return fail("unsupported kind %s", s.kind)
	}
	return []*TypeDescriptor{d}, nil
}

func compileFields(d *TypeDescriptor) {
	t := d.GoType
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type == augmentationsType {
			d.augIndex = sf.Index
			continue
		}
		if !sf.IsExported() {
			continue
		}
		tag := parseFieldTag(sf)
		if tag.skip {
			continue
		}
		if tag.nameField {
			d.nameField = sf.Index
			continue
		}
		d.Fields = append(d.Fields, &FieldDescriptor{
			GoName: sf.Name,
			Ident:  Identifier(sf.Name),
			Tag:    tag.name,
			Index:  sf.Index,
			Type:   sf.Type,
		})
	}
}

// link classifies every field of d against the registry.
func (r *Registry) link(d *TypeDescriptor) error {
	for _, f := range d.Fields {
		if err := r.linkField(d, f); err != nil {
			return err
		}
	}
	if d.Kind == KindTypedScalar {
		d.parse = r.scalarFactory(d.GoType, d.parser, 0)
	}
	return nil
}

func (r *Registry) linkField(owner *TypeDescriptor, f *FieldDescriptor) error {
	t := indirect(f.Type)
	f.Elem = t
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 {
		et := indirect(t.Elem())
		kind, desc, err := r.classify(et)
		if err != nil {
			return r.linkError(owner, f, err)
		}
		if kind == KindChoice || kind == KindList {
			return r.linkError(owner, f, fmt.Errorf("list of %s is not supported", kind))
		}
		f.Kind, f.Elem, f.ElemKind, f.Desc = KindList, et, kind, desc
		return nil
	}
	kind, desc, err := r.classify(t)
	if err != nil {
		return r.linkError(owner, f, err)
	}
	f.Kind, f.Desc = kind, desc
	return nil
}

// classify applies the field classification order: registered nested, enum,
// typed-scalar and choice types first, then identity references, then opaque
// scalars.
func (r *Registry) classify(t reflect.Type) (Kind, *TypeDescriptor, error) {
	if d, ok := r.byType[t]; ok {
		switch d.Kind {
		case KindNested, KindEnum, KindTypedScalar, KindChoice:
			return d.Kind, d, nil
		default:
			return 0, nil, fmt.Errorf("%s cannot be used as a field type; refer to identities with IdentityRef", d)
		}
	}
	if t == identityRefType {
		return KindIdentity, nil, nil
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 {
		return KindList, nil, nil
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan, reflect.Array:
		if implements(t, textMarshalerType) || implements(t, stringerType) {
			return KindScalar, nil, nil
		}
		return 0, nil, fmt.Errorf("type %s is not registered", goTypeName(t))
	}
	if implements(t, enumerationType) || implements(t, typedScalarType) {
		return 0, nil, fmt.Errorf("type %s is not registered", goTypeName(t))
	}
	return KindScalar, nil, nil
}

func (r *Registry) linkError(owner *TypeDescriptor, f *FieldDescriptor, cause error) error {
	return NewError(CodeClassResolution).
		Type(owner.Name).
		Path(f.GoName).
		Detail("cannot classify field").
		Cause(cause).
		Build()
}
