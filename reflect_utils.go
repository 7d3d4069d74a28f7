package yangwire

import (
	"reflect"
	"strings"
)

// fieldTag is the parsed form of a `yang:"..."` struct tag.
type fieldTag struct {
	name      string // explicit wire name
	skip      bool
	nameField bool
}

// parseFieldTag applies the repository-wide rule for struct fields:
// yang:"-" drops the field, yang:"wire-name" fixes the wire name and
// yang:",name" marks the fallback name field.
func parseFieldTag(sf reflect.StructField) fieldTag {
	raw, ok := sf.Tag.Lookup("yang")
	if !ok {
		return fieldTag{}
	}
	if raw == "-" {
		return fieldTag{skip: true}
	}
	parts := strings.Split(raw, ",")
	ft := fieldTag{name: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "name" {
			ft.nameField = true
		}
	}
	return ft
}

// indirect strips pointer layers from t.
func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// deref strips pointer and interface layers from v. The second result is false
// when a nil was met.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// isNull reports whether v represents an absent value.
func isNull(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	case reflect.Struct:
		if v.Type() == identityRefType {
			return v.Interface().(IdentityRef).IsZero()
		}
	}
	return false
}

// assign stores val into dst, allocating when dst is a pointer to val's type.
func assign(dst, val reflect.Value) {
	dt := dst.Type()
	if dt.Kind() == reflect.Pointer && val.Type() != dt {
		p := reflect.New(dt.Elem())
		assign(p.Elem(), val)
		dst.Set(p)
		return
	}
	if val.Type() != dt && val.Type().ConvertibleTo(dt) {
		val = val.Convert(dt)
	}
	dst.Set(val)
}

// goTypeName returns the package-qualified Go name of t.
func goTypeName(t reflect.Type) string {
	t = indirect(t)
	if t == nil {
		return "<nil>"
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
