package yangwire

import (
	"reflect"
	"strings"

	"go.uber.org/zap"
)

type decodeCtx struct {
	path   []string
	issues Issues
}

func (c *decodeCtx) record(code string, err error) {
	is := issueFrom("/"+strings.Join(c.path, "/"), code, err)
	c.issues = append(c.issues, is)
	Logger().Warn("field dropped while decoding",
		zap.String("path", is.Path),
		zap.String("code", is.Code),
		zap.Error(err))
}

// Decode fills out, a non-nil pointer to a registered structured type, from
// el. Fields that cannot be built are left unset and reported in the returned
// Issues; the error is reserved for unusable input.
func (m *Mapper) Decode(el *Element, out any) (Issues, error) {
	if el == nil {
		return nil, NewError(CodeInvalidInput).Detail("nil element").Build()
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, NewError(CodeInvalidInput).Detail("decode target must be a non-nil pointer").Build()
	}
	target := rv.Elem()
	if target.Kind() == reflect.Pointer {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		target = target.Elem()
	}
	d, err := m.reg.Describe(target.Type())
	if err != nil {
		return nil, err
	}
	if d.Kind != KindNested && d.Kind != KindFacet {
		return nil, NewError(CodeInvalidInput).Type(d.Name).Detail("only structured types can be decoded from an element").Build()
	}
	ctx := &decodeCtx{path: []string{el.Name}}
	v := reflect.New(d.GoType).Elem()
	m.decodeStruct(ctx, el, v, d, 0)
	target.Set(v)
	return ctx.issues, nil
}

// DecodeLeaves decodes every element of els as a leaf of type T. It serves
// leaf-list reads.
func DecodeLeaves[T any](m *Mapper, els []*Element) ([]T, Issues) {
	ctx := &decodeCtx{}
	t := reflect.TypeFor[T]()
	base := indirect(t)
	kind, desc, err := m.reg.classify(base)
	if err != nil {
		ctx.record(CodeClassResolution, err)
		return nil, ctx.issues
	}
	out := make([]T, 0, len(els))
	for _, el := range els {
		if el.Null {
			continue
		}
		ctx.path = []string{el.Name}
		val, err := m.decodeLeaf(el.Text, kind, desc, base, Override{}, false)
		if err != nil {
			ctx.record(CodeTypeBuild, err)
			continue
		}
		var item T
		assign(reflect.ValueOf(&item).Elem(), val)
		out = append(out, item)
	}
	return out, ctx.issues
}

// decodeStruct fills v from el and returns how many fields were matched.
func (m *Mapper) decodeStruct(ctx *decodeCtx, el *Element, v reflect.Value, d *TypeDescriptor, depth int) int {
	if depth > MaxDepth {
		ctx.record(CodeDepthExceeded, NewError(CodeDepthExceeded).Type(d.Name).Detail("recursion stopped at depth %d", MaxDepth).Build())
		return 0
	}
	matched := 0
	for _, f := range d.Fields {
		fv := v.FieldByIndex(f.Index)
		if f.Kind == KindChoice {
			if m.decodeChoice(ctx, el, fv, f, depth) {
				matched++
			}
			continue
		}
		name := m.WireName(d, f)
		kids := childrenNamed(el, name)
		if len(kids) == 0 {
			continue
		}
		ctx.path = append(ctx.path, name)
		if m.decodeField(ctx, kids, fv, d, f, depth) {
			matched++
		}
		ctx.path = ctx.path[:len(ctx.path)-1]
	}
	if matched == 0 && d.nameField != nil && el.Text != "" {
		assign(v.FieldByIndex(d.nameField), reflect.ValueOf(el.Text))
		matched++
	}
	if d.augIndex != nil {
		var aug Augmentations
		for _, fd := range m.reg.Facets(d.GoType) {
			fv := reflect.New(fd.GoType).Elem()
			if m.decodeStruct(ctx, el, fv, fd, depth) > 0 {
				aug = aug.With(fv.Interface())
			}
		}
		if aug.Len() > 0 {
			v.FieldByIndex(d.augIndex).Set(reflect.ValueOf(aug))
		}
	}
	return matched
}

// childrenNamed matches wire names and tolerates camelCase tags.
func childrenNamed(el *Element, name string) []*Element {
	var out []*Element
	for _, c := range el.Children {
		if c.Name == name || Kebab(c.Name) == name {
			out = append(out, c)
		}
	}
	return out
}

func (m *Mapper) decodeField(ctx *decodeCtx, kids []*Element, fv reflect.Value, owner *TypeDescriptor, f *FieldDescriptor, depth int) bool {
	ov, hasOv := m.overrides.lookup(owner.GoType, f)
	switch f.Kind {
	case KindNested:
		k := kids[0]
		if k.Null {
			return false
		}
		nv := reflect.New(f.Desc.GoType).Elem()
		m.decodeStruct(ctx, k, nv, f.Desc, depth+1)
		assign(fv, nv)
		return true
	case KindList:
		st := indirect(f.Type)
		out := reflect.MakeSlice(st, 0, len(kids))
		for _, k := range kids {
			if k.Null {
				continue
			}
			item := reflect.New(st.Elem()).Elem()
			if f.ElemKind == KindNested {
				nv := reflect.New(f.Desc.GoType).Elem()
				m.decodeStruct(ctx, k, nv, f.Desc, depth+1)
				assign(item, nv)
			} else {
				val, err := m.decodeLeaf(k.Text, f.ElemKind, f.Desc, f.Elem, ov, hasOv)
				if err != nil {
					ctx.record(CodeTypeBuild, err)
					continue
				}
				assign(item, val)
			}
			out = reflect.Append(out, item)
		}
		if out.Len() == 0 {
			return false
		}
		assign(fv, out)
		return true
	default:
		k := kids[0]
		if k.Null {
			return false
		}
		val, err := m.decodeLeaf(k.Text, f.Kind, f.Desc, f.Elem, ov, hasOv)
		if err != nil {
			ctx.record(CodeTypeBuild, err)
			return false
		}
		assign(fv, val)
		return true
	}
}

// decodeChoice picks the first case whose fields appear in el and decodes it
// from el itself.
func (m *Mapper) decodeChoice(ctx *decodeCtx, el *Element, fv reflect.Value, f *FieldDescriptor, depth int) bool {
	for _, cd := range f.Desc.Cases {
		if !m.anyFieldPresent(el, cd) {
			continue
		}
		cv := reflect.New(cd.GoType).Elem()
		m.decodeStruct(ctx, el, cv, cd, depth)
		it := indirect(f.Type)
		switch {
		case cv.Type().Implements(it):
			fv.Set(cv)
		case cv.Addr().Type().Implements(it):
			fv.Set(cv.Addr())
		default:
			continue
		}
		return true
	}
	return false
}

func (m *Mapper) anyFieldPresent(el *Element, d *TypeDescriptor) bool {
	for _, f := range d.Fields {
		if f.Kind == KindChoice {
			if m.anyCasePresent(el, f.Desc) {
				return true
			}
			continue
		}
		if len(childrenNamed(el, m.WireName(d, f))) > 0 {
			return true
		}
	}
	return false
}

func (m *Mapper) anyCasePresent(el *Element, choice *TypeDescriptor) bool {
	for _, cd := range choice.Cases {
		if m.anyFieldPresent(el, cd) {
			return true
		}
	}
	return false
}

// decodeLeaf builds a leaf value of base type t from text.
func (m *Mapper) decodeLeaf(text string, kind Kind, desc *TypeDescriptor, t reflect.Type, ov Override, hasOv bool) (reflect.Value, error) {
	if hasOv && ov.Parse != nil {
		v, err := ov.Parse(text, t)
		if err != nil {
			return reflect.Value{}, NewError(CodeTypeBuild).Type(goTypeName(t)).Value(text).Cause(err).Build()
		}
		return reflect.ValueOf(v), nil
	}
	switch kind {
	case KindEnum:
		return m.resolveEnum(desc, text)
	case KindTypedScalar:
		if desc.parse == nil {
			return reflect.Value{}, NewError(CodeTypeBuild).Type(desc.Name).Value(text).Detail("no factory for typed scalar").Build()
		}
		v, err := desc.parse(text)
		if err != nil {
			return reflect.Value{}, NewError(CodeTypeBuild).Type(desc.Name).Value(text).Cause(err).Build()
		}
		return v, nil
	case KindIdentity:
		ref, err := m.ResolveIdentity(text)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(ref), nil
	default:
		v, err := decodeBasic(text, t)
		if err != nil {
			return reflect.Value{}, NewError(CodeTypeBuild).Type(goTypeName(t)).Value(text).Cause(err).Build()
		}
		return v, nil
	}
}

func (m *Mapper) resolveEnum(desc *TypeDescriptor, text string) (reflect.Value, error) {
	_, name := SplitQualified(strings.TrimSpace(text))
	if v, ok := desc.enum[strings.ToLower(name)]; ok {
		return v, nil
	}
	return reflect.Value{}, NewError(CodeTypeBuild).Type(desc.Name).Value(text).Detail("unknown enum name").Build()
}

// ResolveIdentity resolves wire text such as "a:opticalTransport" or
// "org.example.IfOTS" to a registered identity. The qualifier before ':' is
// dropped, aliases are applied, otherwise the last dotted segment is taken,
// hyphens removed and the first letter upper-cased.
func (m *Mapper) ResolveIdentity(text string) (IdentityRef, error) {
	name := strings.TrimSpace(text)
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	if alias, ok := m.cfg.IdentityAliases[name]; ok {
		name = alias
	} else {
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		name = upperFirst(strings.ReplaceAll(name, "-", ""))
	}
	d, err := m.reg.Resolve(name)
	if err == nil && d.Kind != KindIdentity {
		err = NewError(CodeClassResolution).Type(d.Name).Detail("not an identity").Build()
	}
	if err != nil {
		return IdentityRef{}, NewError(CodeTypeBuild).Type(name).Value(text).Detail("unresolved identity").Cause(err).Build()
	}
	return IdentityRef{t: d.GoType}, nil
}
