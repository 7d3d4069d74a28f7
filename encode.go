package yangwire

import (
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// MaxDepth bounds recursion into nested values.
const MaxDepth = 15

// Document is the result of one top-level encode call.
type Document struct {
	Root *Element
	// Issues lists the fields that were dropped. A document with issues is
	// still usable.
	Issues Issues
}

// renderCtx is the call-scoped state threaded through one encode call.
type renderCtx struct {
	root         *TypeDescriptor
	excludeNulls bool
	prefixes     int
	path         []string
	issues       Issues
}

// nextPrefix hands out a..z then aa..az. It reports false once all 52 are
// taken.
func (c *renderCtx) nextPrefix() (string, bool) {
	i := c.prefixes
	switch {
	case i < 26:
		c.prefixes++
		return string(rune('a' + i)), true
	case i < 52:
		c.prefixes++
		return "a" + string(rune('a'+i-26)), true
	}
	return "", false
}

func (c *renderCtx) record(code string, err error) {
	is := issueFrom("/"+strings.Join(c.path, "/"), code, err)
	c.issues = append(c.issues, is)
	Logger().Warn("field dropped while encoding",
		zap.String("path", is.Path),
		zap.String("code", is.Code),
		zap.Error(err))
}

// Encode builds the wire tree of v under its schema node name.
func (m *Mapper) Encode(v any) (*Document, error) {
	return m.encode("", v, m.cfg.ExcludeNullValues)
}

// EncodeAs builds the wire tree of v under the root element name.
func (m *Mapper) EncodeAs(name string, v any) (*Document, error) {
	return m.encode(name, v, m.cfg.ExcludeNullValues)
}

// EncodeInput builds an RPC input tree: the root is "input" and nil fields are
// always left out.
func (m *Mapper) EncodeInput(v any) (*Document, error) {
	return m.encode("input", v, true)
}

func (m *Mapper) encode(name string, v any, excludeNulls bool) (*Document, error) {
	rv, ok := deref(reflect.ValueOf(v))
	if !ok {
		return nil, NewError(CodeInvalidInput).Detail("cannot encode a nil value").Build()
	}
	d, err := m.reg.Describe(rv.Type())
	if err != nil {
		return nil, err
	}
	if d.Kind != KindNested && d.Kind != KindFacet {
		return nil, NewError(CodeInvalidInput).Type(d.Name).Detail("only structured types can be a document root").Build()
	}
	if name == "" {
		name = rootName(d)
	}
	ctx := &renderCtx{root: d, excludeNulls: excludeNulls, path: []string{name}}
	root := &Element{Name: name, Namespace: d.QName.Namespace, Module: d.QName.Module, Container: true}
	m.writeFields(ctx, root, rv, d, 0, root.Namespace)
	return &Document{Root: root, Issues: ctx.issues}, nil
}

func (m *Mapper) writeFields(ctx *renderCtx, el *Element, v reflect.Value, d *TypeDescriptor, depth int, inherited string) {
	if depth > MaxDepth {
		ctx.record(CodeDepthExceeded, NewError(CodeDepthExceeded).
			Type(d.Name).
			Detail("recursion stopped at depth %d", MaxDepth).
			Build())
		return
	}
	wrote := false
	for _, f := range d.Fields {
		fv := v.FieldByIndex(f.Index)
		if ctx.excludeNulls && isNull(fv) {
			continue
		}
		name := m.WireName(d, f)
		ctx.path = append(ctx.path, name)
		if m.writeField(ctx, el, name, fv, d, f, depth, inherited) {
			wrote = true
		}
		ctx.path = ctx.path[:len(ctx.path)-1]
	}
	if !wrote && d.nameField != nil {
		m.writeNameFallback(el, v.FieldByIndex(d.nameField))
	}
	for _, fc := range m.facetValues(v, d) {
		m.writeFields(ctx, el, fc.value, fc.desc, depth, inherited)
	}
}

// writeNameFallback puts the name field's value into el's text. Names of
// registered identities are written as the identity's local name.
func (m *Mapper) writeNameFallback(el *Element, fv reflect.Value) {
	sv, ok := deref(fv)
	if !ok || sv.Kind() != reflect.String || sv.String() == "" {
		return
	}
	text := sv.String()
	if d, err := m.reg.Resolve(text); err == nil && d.Kind == KindIdentity {
		text = d.QName.Name
	}
	el.Text = text
}

func (m *Mapper) writeField(ctx *renderCtx, el *Element, name string, fv reflect.Value, owner *TypeDescriptor, f *FieldDescriptor, depth int, inherited string) bool {
	if isNull(fv) {
		if f.Kind == KindChoice {
			// a choice has no element of its own, not even when empty
			return false
		}
		el.Append(&Element{Name: name, Null: true})
		return true
	}
	ov, hasOv := m.overrides.lookup(owner.GoType, f)
	switch f.Kind {
	case KindNested:
		return m.writeNested(ctx, el, name, fv, f.Desc, depth, inherited, false)
	case KindChoice:
		return m.writeChoice(ctx, el, fv, f, depth, inherited)
	case KindList:
		return m.writeList(ctx, el, name, fv, f, ov, hasOv, depth, inherited)
	default:
		leaf := m.leaf(ctx, name, fv, f.Kind, f.Desc, ov, hasOv)
		if leaf == nil {
			return false
		}
		el.Append(leaf)
		return true
	}
}

func (m *Mapper) writeNested(ctx *renderCtx, el *Element, name string, fv reflect.Value, desc *TypeDescriptor, depth int, inherited string, list bool) bool {
	sv, ok := deref(fv)
	if !ok {
		return false
	}
	child := &Element{Name: name, List: list, Container: true}
	effective := inherited
	if ns, module := m.ns.Resolve(desc, nil, ctx.root); ns != "" && ns != inherited {
		child.Namespace, child.Module = ns, module
		effective = ns
	}
	m.writeFields(ctx, child, sv, desc, depth+1, effective)
	el.Append(child)
	return true
}

// writeChoice writes the active case's fields straight into el at the same
// depth.
func (m *Mapper) writeChoice(ctx *renderCtx, el *Element, fv reflect.Value, f *FieldDescriptor, depth int, inherited string) bool {
	cv, ok := deref(fv)
	if !ok {
		return false
	}
	cd, err := m.reg.Describe(cv.Type())
	if err != nil || !containsDesc(f.Desc.Cases, cd) {
		ctx.record(CodeClassResolution, NewError(CodeClassResolution).
			Type(goTypeName(cv.Type())).
			Detail("not a case of %s", f.Desc.Name).
			Cause(err).
			Build())
		return false
	}
	before := len(el.Children)
	m.writeFields(ctx, el, cv, cd, depth, inherited)
	return len(el.Children) > before
}

func (m *Mapper) writeList(ctx *renderCtx, el *Element, name string, fv reflect.Value, f *FieldDescriptor, ov Override, hasOv bool, depth int, inherited string) bool {
	sv, ok := deref(fv)
	if !ok {
		return false
	}
	wrote := false
	for i := 0; i < sv.Len(); i++ {
		item := sv.Index(i)
		if isNull(item) {
			continue
		}
		if f.ElemKind == KindNested {
			if m.writeNested(ctx, el, name, item, f.Desc, depth, inherited, true) {
				wrote = true
			}
			continue
		}
		leaf := m.leaf(ctx, name, item, f.ElemKind, f.Desc, ov, hasOv)
		if leaf == nil {
			continue
		}
		leaf.List = true
		el.Append(leaf)
		wrote = true
	}
	return wrote
}

// leaf renders enum, typed-scalar, identity and scalar values. A leaf stays
// in the namespace of its parent; only identity values carry a namespace, and
// it scopes the value through a prefix.
func (m *Mapper) leaf(ctx *renderCtx, name string, v reflect.Value, kind Kind, desc *TypeDescriptor, ov Override, hasOv bool) *Element {
	leaf := &Element{Name: name}
	var target *TypeDescriptor
	sv, ok := deref(v)
	if !ok {
		leaf.Null = true
		return leaf
	}
	switch kind {
	case KindEnum:
		en, ok := sv.Interface().(Enumeration)
		if !ok {
			ctx.record(CodeEncoding, NewError(CodeEncoding).Type(desc.Name).Detail("value is not an enumeration").Build())
			return nil
		}
		leaf.Text = lowerFirst(en.EnumName())
	case KindTypedScalar:
		ts, ok := typedScalar(sv)
		if !ok {
			ctx.record(CodeEncoding, NewError(CodeEncoding).Type(desc.Name).Detail("value is not a typed scalar").Build())
			return nil
		}
		leaf.Text, leaf.Type = scalarText(reflect.ValueOf(ts.ScalarValue()))
	case KindIdentity:
		ref := sv.Interface().(IdentityRef)
		td, err := m.reg.Describe(ref.Type())
		if err == nil && td.Kind != KindIdentity {
			err = NewError(CodeClassResolution).Type(td.Name).Detail("not an identity").Build()
		}
		if err != nil {
			ctx.record(CodeClassResolution, err)
			return nil
		}
		leaf.Text = td.QName.Name
		target = td
	default:
		leaf.Text, leaf.Type = scalarText(sv)
	}
	if hasOv && ov.Format != nil {
		s, err := ov.Format(sv.Interface())
		if err != nil {
			ctx.record(CodeEncoding, NewError(CodeEncoding).Value(sv.Interface()).Detail("override failed, value written as is").Cause(err).Build())
		} else {
			leaf.Text, leaf.Type = s, ValueString
		}
	}
	if target == nil {
		return leaf
	}
	ns, module := m.ns.Resolve(nil, target, ctx.root)
	if ns == "" {
		return leaf
	}
	prefix, ok := ctx.nextPrefix()
	if !ok {
		ctx.record(CodeEncoding, NewError(CodeEncoding).
			Type(target.Name).
			Detail("no namespace prefix left in this document").
			Build())
		return nil
	}
	leaf.Namespace, leaf.Module, leaf.Prefix = ns, module, prefix
	return leaf
}

func typedScalar(v reflect.Value) (TypedScalar, bool) {
	if ts, ok := v.Interface().(TypedScalar); ok {
		return ts, true
	}
	if v.CanAddr() {
		ts, ok := v.Addr().Interface().(TypedScalar)
		return ts, ok
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	ts, ok := p.Interface().(TypedScalar)
	return ts, ok
}
