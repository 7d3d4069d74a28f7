package yangwire

import (
	"reflect"
)

// Enumeration is implemented by enum constants. EnumName returns the YANG enum
// name; the encoder lower-cases its first letter.
type Enumeration interface {
	EnumName() string
}

// TypedScalar is implemented by typedef wrappers around one primitive value.
type TypedScalar interface {
	ScalarValue() any
}

// IdentityRef refers to a registered identity type.
type IdentityRef struct {
	t reflect.Type
}

// IdentityOf returns a reference to identity type T.
func IdentityOf[T any]() IdentityRef { return IdentityRef{t: reflect.TypeFor[T]()} }

// Type returns the referenced identity type, or nil.
func (r IdentityRef) Type() reflect.Type { return r.t }

// IsZero reports whether r refers to nothing.
func (r IdentityRef) IsZero() bool { return r.t == nil }

func (r IdentityRef) String() string {
	if r.t == nil {
		return "<nil>"
	}
	return r.t.Name()
}

var (
	identityRefType   = reflect.TypeFor[IdentityRef]()
	augmentationsType = reflect.TypeFor[Augmentations]()
)

// Augmentable is implemented by types that embed Augmentations.
type Augmentable interface {
	Augmentation(t reflect.Type) (any, bool)
}

// Augmentations holds the facets attached to an owner value. Owners embed it.
// The zero value holds nothing and a value is never modified after creation.
type Augmentations struct {
	facets map[reflect.Type]any
}

// NewAugmentations returns a container holding facets. Pointer facets are
// stored by value.
func NewAugmentations(facets ...any) Augmentations {
	var a Augmentations
	for _, f := range facets {
		a = a.With(f)
	}
	return a
}

// Augmentation returns the facet of type t.
func (a Augmentations) Augmentation(t reflect.Type) (any, bool) {
	if a.facets == nil || t == nil {
		return nil, false
	}
	v, ok := a.facets[t]
	return v, ok
}

// With returns a copy of a that also holds facet.
func (a Augmentations) With(facet any) Augmentations {
	rv := reflect.ValueOf(facet)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return a
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return a
	}
	out := make(map[reflect.Type]any, len(a.facets)+1)
	for k, v := range a.facets {
		out[k] = v
	}
	out[rv.Type()] = rv.Interface()
	return Augmentations{facets: out}
}

// Len returns the number of facets held.
func (a Augmentations) Len() int { return len(a.facets) }

// AugmentationOf returns owner's facet of type F.
func AugmentationOf[F any](owner Augmentable) (F, bool) {
	var zero F
	if owner == nil {
		return zero, false
	}
	v, ok := owner.Augmentation(reflect.TypeFor[F]())
	if !ok {
		return zero, false
	}
	f, ok := v.(F)
	return f, ok
}
