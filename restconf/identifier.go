// Package restconf derives RFC 8040 resource paths from typed identifiers and
// drives a RESTCONF server through a pluggable transport.
package restconf

import (
	"reflect"
	"strings"

	yangwire "github.com/reoring/yangwire"
)

// Segment is one step of an Identifier. Field is set only on a trailing leaf
// segment, in which case Type is the struct owning the leaf.
type Segment struct {
	Type  reflect.Type
	Key   any
	Field string
}

// Identifier is an ordered, immutable chain of typed path segments.
type Identifier struct {
	segs []Segment
}

func (id Identifier) with(s Segment) Identifier {
	segs := make([]Segment, len(id.segs), len(id.segs)+1)
	copy(segs, id.segs)
	return Identifier{segs: append(segs, s)}
}

// Root starts an identifier at top-level node T.
func Root[T any]() Identifier {
	return Identifier{}.with(Segment{Type: reflect.TypeFor[T]()})
}

// Child descends into container T.
func Child[T any](parent Identifier) Identifier {
	return parent.with(Segment{Type: reflect.TypeFor[T]()})
}

// Keyed descends into the entry of list T identified by key. key may be a
// scalar or a composite key struct.
func Keyed[T any](parent Identifier, key any) Identifier {
	return parent.with(Segment{Type: reflect.TypeFor[T](), Key: key})
}

// Augment steps into facet T. Facets are not addressable themselves and
// only scope the segments that follow.
func Augment[T any](parent Identifier) Identifier {
	return parent.with(Segment{Type: reflect.TypeFor[T]()})
}

// Leaf addresses the leaf or leaf-list field goField of the last segment's
// type.
func Leaf(parent Identifier, goField string) Identifier {
	return parent.with(Segment{Type: parent.Target(), Field: goField})
}

// LeafOf is Leaf with the field picked by selector.
//
//	LeafOf(id, func(i *openroadm.Info) *[]string { return &i.Aliases })
func LeafOf[O, F any](parent Identifier, selector func(*O) *F) Identifier {
	tok := yangwire.FieldOf(selector)
	return parent.with(Segment{Type: reflect.TypeFor[O](), Field: tok.GoName()})
}

// Segments returns a copy of the segments.
func (id Identifier) Segments() []Segment { return append([]Segment(nil), id.segs...) }

// Len returns the number of segments.
func (id Identifier) Len() int { return len(id.segs) }

// Target returns the type the identifier points at: the last segment's type.
func (id Identifier) Target() reflect.Type {
	if len(id.segs) == 0 {
		return nil
	}
	return id.segs[len(id.segs)-1].Type
}

func (id Identifier) String() string {
	var b strings.Builder
	for _, s := range id.segs {
		b.WriteByte('/')
		if s.Field != "" {
			b.WriteString(s.Field)
			continue
		}
		if s.Type != nil {
			b.WriteString(s.Type.Name())
		}
		if s.Key != nil {
			b.WriteString("[key]")
		}
	}
	return b.String()
}
