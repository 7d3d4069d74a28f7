package yangwire

import (
	"strings"
)

// ValueType tells map-shaped encodings (JSON, CBOR) how to type leaf text.
type ValueType uint8

const (
	ValueString ValueType = iota
	ValueNumber
	ValueBool
)

// Element is one node of the wire tree.
//
// Namespace and Module are set only where the namespace differs from the one
// the element inherits. When Prefix is set the namespace qualifies the text
// value (identity references) and not the element itself.
type Element struct {
	Name      string
	Namespace string
	Module    string
	Prefix    string
	Text      string
	Type      ValueType
	// Null marks an explicitly empty value.
	Null bool
	// List marks list and leaf-list entries.
	List bool
	// Container marks containers and list entries, which stay objects even
	// without children.
	Container bool
	Children  []*Element
}

// NewElement returns an element without namespace.
func NewElement(name string) *Element { return &Element{Name: name} }

// Append adds children in order.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Child returns the first child with the given name.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children with the given name, in order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// IsLeaf reports whether e is a leaf value.
func (e *Element) IsLeaf() bool { return !e.Container && len(e.Children) == 0 }

// QualifiedText returns the text, prefixed with module when the value is
// namespace-qualified by a module other than context.
func (e *Element) QualifiedText(context string) string {
	if e.Prefix != "" && e.Module != "" && e.Module != context {
		return e.Module + ":" + e.Text
	}
	return e.Text
}

// Member is a group of same-named children, as rendered by map-shaped
// encodings.
type Member struct {
	// Key is the member name, module-qualified when the module changes.
	Key      string
	Module   string
	Elements []*Element
	Array    bool
}

// Members groups e's children by name in first-appearance order. context is
// the module e is written in. Only containers and list entries switch module;
// a namespace on a leaf scopes its value and leaves the member name alone.
// Null children are left out.
func (e *Element) Members(context string) []Member {
	var out []Member
	index := map[string]int{}
	for _, c := range e.Children {
		if c.Null {
			continue
		}
		module := context
		key := c.Name
		if c.Prefix == "" && c.Module != "" && !c.IsLeaf() {
			module = c.Module
			if c.Module != context {
				key = c.Module + ":" + c.Name
			}
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Member{Key: key, Module: module})
		}
		out[i].Elements = append(out[i].Elements, c)
		if c.List || len(out[i].Elements) > 1 {
			out[i].Array = true
		}
	}
	return out
}

// SplitQualified splits "module:name" into its parts.
func SplitQualified(s string) (module, name string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	if e.Children != nil {
		c.Children = make([]*Element, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}
