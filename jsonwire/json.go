// Package jsonwire renders wire trees as RFC 7951 JSON and reads them back.
package jsonwire

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	yangwire "github.com/reoring/yangwire"
	eng "github.com/reoring/yangwire/internal/engine"
	"github.com/reoring/yangwire/source/gojson"
)

// ContentType is the RESTCONF media type for JSON payloads.
const ContentType = "application/yang-data+json"

// DefaultMaxDepth bounds nesting while reading.
const DefaultMaxDepth = 64

// ModuleLookup resolves module names found in member keys.
// *yangwire.Registry satisfies it.
type ModuleLookup interface {
	ModuleByName(name string) (*yangwire.Module, bool)
}

// Options tune reading and writing. The zero value is usable.
type Options struct {
	Indent string
	// MaxDepth bounds nesting while reading; 0 means DefaultMaxDepth.
	MaxDepth int
	// AllowDuplicates accepts repeated keys within one object; the last
	// occurrence is appended after the first.
	AllowDuplicates bool
}

func pick(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options{}
}

// Marshal renders root as {"module:name": {...}}.
func Marshal(root *yangwire.Element, opts ...Options) ([]byte, error) {
	if root == nil {
		return nil, errors.New("jsonwire: nil root")
	}
	o := pick(opts)
	var buf bytes.Buffer
	buf.WriteByte('{')
	key := root.Name
	if root.Module != "" {
		key = root.Module + ":" + root.Name
	}
	if err := writeString(&buf, key); err != nil {
		return nil, err
	}
	buf.WriteByte(':')
	if err := writeValue(&buf, root, root.Module); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	if o.Indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := j.Indent(&out, buf.Bytes(), "", o.Indent); err != nil {
		return nil, fmt.Errorf("jsonwire: %w", err)
	}
	return out.Bytes(), nil
}

func writeObject(w *bytes.Buffer, el *yangwire.Element, context string) error {
	w.WriteByte('{')
	for i, m := range el.Members(context) {
		if i > 0 {
			w.WriteByte(',')
		}
		if err := writeString(w, m.Key); err != nil {
			return err
		}
		w.WriteByte(':')
		if m.Array {
			w.WriteByte('[')
		}
		for k, c := range m.Elements {
			if k > 0 {
				w.WriteByte(',')
			}
			if err := writeValue(w, c, m.Module); err != nil {
				return err
			}
		}
		if m.Array {
			w.WriteByte(']')
		}
	}
	w.WriteByte('}')
	return nil
}

// writeValue writes one member value. Null children never get here, Members
// leaves them out.
func writeValue(w *bytes.Buffer, el *yangwire.Element, context string) error {
	switch {
	case el.Null:
		return fmt.Errorf("jsonwire: %s has no value", el.Name)
	case !el.IsLeaf():
		return writeObject(w, el, context)
	}
	switch el.Type {
	case yangwire.ValueNumber, yangwire.ValueBool:
		if !j.Valid([]byte(el.Text)) {
			return fmt.Errorf("jsonwire: %q is not a valid %s literal for %s", el.Text, typeName(el.Type), el.Name)
		}
		w.WriteString(el.Text)
		return nil
	}
	return writeString(w, el.QualifiedText(context))
}

func typeName(t yangwire.ValueType) string {
	if t == yangwire.ValueBool {
		return "bool"
	}
	return "number"
}

func writeString(w *bytes.Buffer, s string) error {
	b, err := j.Marshal(s)
	if err != nil {
		return fmt.Errorf("jsonwire: %w", err)
	}
	w.Write(b)
	return nil
}

// Unmarshal parses a document holding one top-level member into a wire tree.
// A top-level list with a single entry is unwrapped to that entry.
func Unmarshal(data []byte, modules ModuleLookup, opts ...Options) (*yangwire.Element, error) {
	all, err := UnmarshalAll(data, modules, opts...)
	if err != nil {
		return nil, err
	}
	if len(all) != 1 {
		return nil, fmt.Errorf("jsonwire: expected one top-level entry, got %d", len(all))
	}
	return all[0], nil
}

// Decode is Unmarshal over a reader.
func Decode(r io.Reader, modules ModuleLookup, opts ...Options) (*yangwire.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("jsonwire: %w", err)
	}
	return Unmarshal(data, modules, opts...)
}

// UnmarshalAll parses a document whose single top-level member may be a list,
// returning one root per entry.
func UnmarshalAll(data []byte, modules ModuleLookup, opts ...Options) ([]*yangwire.Element, error) {
	o := pick(opts)
	depth := o.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	src := eng.WrapWithEnforcement(gojson.NewBytes(data), eng.EnforceOptions{
		RejectDuplicates: !o.AllowDuplicates,
		MaxDepth:         depth,
	})
	v, err := eng.ReadValue(src)
	if err != nil {
		return nil, fmt.Errorf("jsonwire: %w", err)
	}
	if v.Kind != eng.KindBeginObject || len(v.Members) != 1 {
		return nil, errors.New("jsonwire: document must be an object with exactly one member")
	}
	p := &parser{modules: modules}
	top := v.Members[0]
	module, name := yangwire.SplitQualified(top.Key)
	proto := &yangwire.Element{Name: name}
	if module != "" {
		proto.Module = module
		proto.Namespace = p.namespace(module)
	}
	values := []*eng.Value{top.Value}
	if top.Value.Kind == eng.KindBeginArray {
		values = top.Value.Items
	}
	out := make([]*yangwire.Element, 0, len(values))
	for _, item := range values {
		root := &yangwire.Element{Name: proto.Name, Module: proto.Module, Namespace: proto.Namespace}
		if err := p.fill(root, item, proto.Module); err != nil {
			return nil, err
		}
		out = append(out, root)
	}
	return out, nil
}

type parser struct {
	modules ModuleLookup
}

func (p *parser) namespace(module string) string {
	if p.modules == nil {
		return ""
	}
	if m, ok := p.modules.ModuleByName(module); ok {
		return m.Namespace
	}
	return ""
}

// fill copies v into el. context is the module el is written in.
func (p *parser) fill(el *yangwire.Element, v *eng.Value, context string) error {
	switch v.Kind {
	case eng.KindBeginObject:
		el.Container = true
		for _, m := range v.Members {
			module, name := yangwire.SplitQualified(m.Key)
			inner := context
			proto := yangwire.Element{Name: name}
			if module != "" && module != context {
				proto.Module = module
				proto.Namespace = p.namespace(module)
				inner = module
			}
			if m.Value.Kind == eng.KindBeginArray {
				for _, item := range m.Value.Items {
					if item.Kind == eng.KindBeginArray {
						return fmt.Errorf("jsonwire: nested array under %q", m.Key)
					}
					c := proto
					c.List = true
					if err := p.fill(&c, item, inner); err != nil {
						return err
					}
					el.Append(&c)
				}
				continue
			}
			c := proto
			if err := p.fill(&c, m.Value, inner); err != nil {
				return err
			}
			el.Append(&c)
		}
	case eng.KindString:
		p.leafText(el, v.Text)
	case eng.KindNumber:
		el.Text, el.Type = v.Text, yangwire.ValueNumber
	case eng.KindBool:
		el.Text, el.Type = v.Text, yangwire.ValueBool
	case eng.KindNull:
		el.Null = true
	default:
		return fmt.Errorf("jsonwire: unexpected %s under %q", v.Kind, el.Name)
	}
	return nil
}

// leafText splits "module:value" when module is a known module. Such values
// are identity references.
func (p *parser) leafText(el *yangwire.Element, text string) {
	el.Text = text
	module, name := yangwire.SplitQualified(text)
	if module == "" || p.modules == nil {
		return
	}
	m, ok := p.modules.ModuleByName(module)
	if !ok {
		return
	}
	el.Text, el.Prefix, el.Module, el.Namespace = name, module, m.Name, m.Namespace
}
