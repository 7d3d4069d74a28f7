package yangwire

import (
	"reflect"
)

// FieldToken names one top-level field of T. Overrides and leaf identifiers
// are keyed by it.
type FieldToken[T any] struct {
	goName string
}

// GoName returns the Go name of the selected field.
func (t FieldToken[T]) GoName() string { return t.goName }

// Ident returns the lower-camel identifier of the selected field.
func (t FieldToken[T]) Ident() string { return Identifier(t.goName) }

// FieldOf returns the token of the field selector points at:
//
//	FieldOf(func(i *openroadm.Interface) **string { return &i.Name })
//
// It panics when selector does not return the address of a top-level field.
func FieldOf[T any, F any](selector func(*T) *F) FieldToken[T] {
	if selector == nil {
		panic("yangwire.FieldOf: selector must not be nil")
	}
	var zero T
	fp := reflect.ValueOf(selector(&zero)).Pointer()

	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	if rt.Kind() != reflect.Struct {
		panic("yangwire.FieldOf: T must be a struct")
	}
	for i := 0; i < rt.NumField(); i++ {
		fv := rv.Field(i)
		if !fv.CanAddr() || !rt.Field(i).IsExported() {
			continue
		}
		// Zero-sized fields share addresses; keep the first exported match.
		if fv.Addr().Pointer() == fp && fv.Type() == reflect.TypeFor[F]() {
			if parseFieldTag(rt.Field(i)).skip {
				panic("yangwire.FieldOf: selected field is disabled")
			}
			return FieldToken[T]{goName: rt.Field(i).Name}
		}
	}
	panic("yangwire.FieldOf: selector must return address of a top-level field of T")
}
