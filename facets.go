package yangwire

import (
	"reflect"
)

type facetValue struct {
	desc  *TypeDescriptor
	value reflect.Value
}

// facetValues returns the facets present on v, in declaration order and at
// most once each.
func (m *Mapper) facetValues(v reflect.Value, d *TypeDescriptor) []facetValue {
	if d.augIndex == nil {
		return nil
	}
	declared := m.reg.Facets(d.GoType)
	if len(declared) == 0 {
		return nil
	}
	aug, _ := v.FieldByIndex(d.augIndex).Interface().(Augmentations)
	if aug.Len() == 0 {
		return nil
	}
	var out []facetValue
	seen := make(map[*TypeDescriptor]struct{}, len(declared))
	for _, fd := range declared {
		if _, dup := seen[fd]; dup {
			continue
		}
		f, ok := aug.Augmentation(fd.GoType)
		if !ok || f == nil {
			continue
		}
		seen[fd] = struct{}{}
		out = append(out, facetValue{desc: fd, value: reflect.ValueOf(f)})
	}
	return out
}

// FacetsOf returns the registered facets present on instance, in declaration
// order. Facets held by the instance but not declared for its type are
// ignored.
func (m *Mapper) FacetsOf(instance any) []any {
	rv, ok := deref(reflect.ValueOf(instance))
	if !ok {
		return nil
	}
	d, err := m.reg.Describe(rv.Type())
	if err != nil {
		return nil
	}
	fvs := m.facetValues(rv, d)
	out := make([]any, len(fvs))
	for i, fv := range fvs {
		out[i] = fv.value.Interface()
	}
	return out
}
