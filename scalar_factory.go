package yangwire

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

type factory func(string) (reflect.Value, error)

// scalarFactory picks how typedef t is built from wire text. Candidates, in
// order: the registered parser, UnmarshalText on *t, a string conversion (or
// a struct wrapping a single string), a struct wrapping a single value whose
// type has its own factory (one level only), and finally the default decoder
// for t's underlying kind. A nil result means no candidate applies.
func (r *Registry) scalarFactory(t reflect.Type, parser factory, depth int) factory {
	if parser != nil {
		return parser
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return func(s string) (reflect.Value, error) {
			p := reflect.New(t)
			if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return reflect.Value{}, err
			}
			return p.Elem(), nil
		}
	}
	if t.Kind() == reflect.String {
		return func(s string) (reflect.Value, error) { return reflect.ValueOf(s).Convert(t), nil }
	}
	if t.Kind() == reflect.Struct {
		if idx, ok := singleField(t); ok {
			ft := t.Field(idx).Type
			if ft.Kind() == reflect.String {
				return wrapField(t, idx, func(s string) (reflect.Value, error) {
					return reflect.ValueOf(s).Convert(ft), nil
				})
			}
			if depth == 0 {
				if inner := r.ownFactory(indirect(ft)); inner != nil {
					return wrapField(t, idx, inner)
				}
			}
			if dec := defaultDecoder(indirect(ft)); dec != nil {
				return wrapField(t, idx, dec)
			}
			return nil
		}
	}
	return defaultDecoder(t)
}

// ownFactory returns the factory t exposes by itself: a registered parser,
// UnmarshalText or a string conversion.
func (r *Registry) ownFactory(t reflect.Type) factory {
	var parser factory
	if d, ok := r.byType[t]; ok && d.Kind == KindTypedScalar {
		parser = d.parser
	}
	if parser == nil && !reflect.PointerTo(t).Implements(textUnmarshalerType) && t.Kind() != reflect.String {
		return nil
	}
	return r.scalarFactory(t, parser, 1)
}

func singleField(t reflect.Type) (int, bool) {
	idx := -1
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		if idx >= 0 {
			return -1, false
		}
		idx = i
	}
	return idx, idx >= 0
}

func wrapField(t reflect.Type, idx int, inner factory) factory {
	return func(s string) (reflect.Value, error) {
		fv, err := inner(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		assign(out.Field(idx), fv)
		return out, nil
	}
}

// defaultDecoder parses basic kinds.
func defaultDecoder(t reflect.Type) factory {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return func(s string) (reflect.Value, error) { return decodeBasic(s, t) }
	}
	return nil
}

// decodeBasic converts text into a value of t. Types with UnmarshalText (time.Time)
// are accepted as well.
func decodeBasic(s string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	default:
		if reflect.PointerTo(t).Implements(textUnmarshalerType) {
			p := reflect.New(t)
			if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return reflect.Value{}, err
			}
			return p.Elem(), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot decode %q into %s", s, t)
	}
	return out, nil
}

// scalarText renders a primitive and reports how map-shaped encodings should
// type it.
func scalarText(v reflect.Value) (string, ValueType) {
	v, ok := deref(v)
	if !ok {
		return "", ValueString
	}
	if v.Type() != reflect.TypeFor[string]() {
		if tm, ok := v.Interface().(encoding.TextMarshaler); ok {
			if b, err := tm.MarshalText(); err == nil {
				return string(b), ValueString
			}
		}
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), ValueString
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), ValueBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), ValueNumber
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), ValueNumber
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), ValueNumber
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), ValueString
	}
	return fmt.Sprint(v.Interface()), ValueString
}
