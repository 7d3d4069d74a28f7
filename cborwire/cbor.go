// Package cborwire renders wire trees as CBOR using the same member layout as
// RFC 7951 JSON. Maps are written in Core Deterministic order, so a parsed
// tree lists members sorted by key.
package cborwire

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/fxamacker/cbor/v2"

	yangwire "github.com/reoring/yangwire"
)

// ContentType is the media type for CBOR payloads.
const ContentType = "application/yang-data+cbor"

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		MaxNestedLevels: 64,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// ModuleLookup resolves module names found in member keys.
type ModuleLookup interface {
	ModuleByName(name string) (*yangwire.Module, bool)
}

// Marshal renders root as a one-member map.
func Marshal(root *yangwire.Element) ([]byte, error) {
	if root == nil {
		return nil, errors.New("cborwire: nil root")
	}
	tree, err := Tree(root)
	if err != nil {
		return nil, err
	}
	b, err := encMode.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("cborwire: %w", err)
	}
	return b, nil
}

// Tree converts root to the generic map form Marshal encodes.
func Tree(root *yangwire.Element) (map[string]any, error) {
	v, err := value(root, root.Module)
	if err != nil {
		return nil, err
	}
	key := root.Name
	if root.Module != "" {
		key = root.Module + ":" + root.Name
	}
	return map[string]any{key: v}, nil
}

func value(el *yangwire.Element, context string) (any, error) {
	if el.Null {
		return nil, nil
	}
	if !el.IsLeaf() {
		out := map[string]any{}
		for _, m := range el.Members(context) {
			items := make([]any, 0, len(m.Elements))
			for _, c := range m.Elements {
				v, err := value(c, m.Module)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			if m.Array {
				out[m.Key] = items
			} else {
				out[m.Key] = items[0]
			}
		}
		return out, nil
	}
	switch el.Type {
	case yangwire.ValueBool:
		b, err := strconv.ParseBool(el.Text)
		if err != nil {
			return nil, fmt.Errorf("cborwire: %s: %w", el.Name, err)
		}
		return b, nil
	case yangwire.ValueNumber:
		if n, err := strconv.ParseInt(el.Text, 10, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseUint(el.Text, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(el.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("cborwire: %s: %w", el.Name, err)
		}
		return f, nil
	}
	return el.QualifiedText(context), nil
}

// Unmarshal parses a one-member map back into a wire tree. A top-level list
// must hold exactly one entry.
func Unmarshal(data []byte, modules ModuleLookup) (*yangwire.Element, error) {
	all, err := UnmarshalAll(data, modules)
	if err != nil {
		return nil, err
	}
	if len(all) != 1 {
		return nil, fmt.Errorf("cborwire: expected one top-level entry, got %d", len(all))
	}
	return all[0], nil
}

// UnmarshalAll parses a one-member map whose value may be a list, returning
// one root per entry.
func UnmarshalAll(data []byte, modules ModuleLookup) ([]*yangwire.Element, error) {
	var top map[string]any
	if err := decMode.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("cborwire: %w", err)
	}
	if len(top) != 1 {
		return nil, errors.New("cborwire: document must be a map with exactly one member")
	}
	var key string
	for k := range top {
		key = k
	}
	p := &parser{modules: modules}
	module, name := yangwire.SplitQualified(key)
	values := []any{top[key]}
	if items, ok := top[key].([]any); ok {
		values = items
	}
	out := make([]*yangwire.Element, 0, len(values))
	for _, v := range values {
		root := &yangwire.Element{Name: name, Module: module, Namespace: p.namespace(module)}
		if err := p.fill(root, v, module); err != nil {
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
	if p.modules == nil || module == "" {
		return ""
	}
	if m, ok := p.modules.ModuleByName(module); ok {
		return m.Namespace
	}
	return ""
}

func (p *parser) fill(el *yangwire.Element, v any, context string) error {
	switch t := v.(type) {
	case nil:
		el.Null = true
	case map[string]any:
		el.Container = true
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			module, name := yangwire.SplitQualified(k)
			proto := yangwire.Element{Name: name}
			inner := context
			if module != "" && module != context {
				proto.Module, proto.Namespace, inner = module, p.namespace(module), module
			}
			if items, ok := t[k].([]any); ok {
				for _, item := range items {
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
			if err := p.fill(&c, t[k], inner); err != nil {
				return err
			}
			el.Append(&c)
		}
	case string:
		el.Text = t
		if module, name := yangwire.SplitQualified(t); module != "" && p.modules != nil {
			if m, ok := p.modules.ModuleByName(module); ok {
				el.Text, el.Prefix, el.Module, el.Namespace = name, module, m.Name, m.Namespace
			}
		}
	case bool:
		el.Text, el.Type = strconv.FormatBool(t), yangwire.ValueBool
	case uint64:
		el.Text, el.Type = strconv.FormatUint(t, 10), yangwire.ValueNumber
	case int64:
		el.Text, el.Type = strconv.FormatInt(t, 10), yangwire.ValueNumber
	case float64:
		el.Text, el.Type = strconv.FormatFloat(t, 'f', -1, 64), yangwire.ValueNumber
	case float32:
		el.Text, el.Type = strconv.FormatFloat(float64(t), 'f', -1, 32), yangwire.ValueNumber
	case []any:
		return fmt.Errorf("cborwire: nested array under %q", el.Name)
	default:
		return fmt.Errorf("cborwire: unsupported %T under %q", v, el.Name)
	}
	return nil
}
