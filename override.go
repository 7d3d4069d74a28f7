package yangwire

import (
	"reflect"
)

// Override customizes how a field is named or converted. Nil members fall
// back to the default behavior.
type Override struct {
	// Name maps the field identifier to its wire name.
	Name func(ident string) string
	// Format renders a leaf value. A failure is recorded as an encoding issue
	// and the value is rendered the default way.
	Format func(v any) (string, error)
	// Parse builds a leaf value of type t from wire text.
	Parse func(text string, t reflect.Type) (any, error)
}

type fieldKey struct {
	owner reflect.Type
	field string
}

// Overrides is the serializer override registry. Per-field entries win over
// per-type entries. Populate it before handing it to NewMapper.
type Overrides struct {
	byType  map[reflect.Type]Override
	byField map[fieldKey]Override
}

// NewOverrides returns an empty registry.
func NewOverrides() *Overrides {
	return &Overrides{byType: map[reflect.Type]Override{}, byField: map[fieldKey]Override{}}
}

// ForType applies ov to every field whose type is t.
func (o *Overrides) ForType(t reflect.Type, ov Override) *Overrides {
	o.byType[indirect(t)] = ov
	return o
}

// ForField applies ov to the field goField of owner.
func (o *Overrides) ForField(owner reflect.Type, goField string, ov Override) *Overrides {
	o.byField[fieldKey{owner: indirect(owner), field: goField}] = ov
	return o
}

// OverrideType applies ov to every field of type T.
func OverrideType[T any](o *Overrides, ov Override) *Overrides {
	return o.ForType(reflect.TypeFor[T](), ov)
}

// OverrideField applies ov to the field of O picked by selector.
//
//	OverrideField(o, func(c *CircuitPacks) *string { return &c.SubSlot }, codec.KeepName())
func OverrideField[O, F any](o *Overrides, selector func(*O) *F, ov Override) *Overrides {
	tok := FieldOf(selector)
	return o.ForField(reflect.TypeFor[O](), tok.GoName(), ov)
}

// Len returns the number of registered overrides.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.byType) + len(o.byField)
}

func (o *Overrides) lookup(owner reflect.Type, f *FieldDescriptor) (Override, bool) {
	if o == nil {
		return Override{}, false
	}
	if ov, ok := o.byField[fieldKey{owner: owner, field: f.GoName}]; ok {
		return ov, true
	}
	t := indirect(f.Type)
	if ov, ok := o.byType[t]; ok {
		return ov, true
	}
	if f.Kind == KindList {
		if ov, ok := o.byType[f.Elem]; ok {
			return ov, true
		}
	}
	return Override{}, false
}
