package restconf

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	yangwire "github.com/reoring/yangwire"
)

// Store is the RFC 8040 resource root a path lives under.
type Store string

const (
	StoreData       Store = "data"
	StoreOperations Store = "operations"
)

// Mount describes the indirection to a managed device's own datastore. The
// rendered form is /<Root>/<Node>=<node-id>/<Indicator>.
type Mount struct {
	Root      string `toml:"root" yaml:"root"`
	Node      string `toml:"node" yaml:"node"`
	Indicator string `toml:"indicator" yaml:"indicator"`
}

// DefaultMount is the OpenDaylight netconf topology mount point.
var DefaultMount = Mount{
	Root:      "network-topology:network-topology/topology=topology-netconf",
	Node:      "node",
	Indicator: "yang-ext:mount",
}

// ResourcePath is a built path relative to the RESTCONF root.
type ResourcePath struct {
	Path string
	// LeafList marks a request for a complete leaf-list; its response holds
	// several values instead of one object.
	LeafList bool
}

func (p ResourcePath) String() string { return p.Path }

// PathBuilder turns identifiers into resource paths. It is read-only after
// construction.
type PathBuilder struct {
	mapper *yangwire.Mapper
	mount  Mount
}

// PathOption configures a PathBuilder.
type PathOption func(*PathBuilder)

// WithMount replaces DefaultMount.
func WithMount(m Mount) PathOption { return func(b *PathBuilder) { b.mount = m } }

// NewPathBuilder binds a builder to the registry and naming of m.
func NewPathBuilder(m *yangwire.Mapper, opts ...PathOption) *PathBuilder {
	b := &PathBuilder{mapper: m, mount: DefaultMount}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build returns the data-store path of id. A non-empty nodeID addresses the
// mounted device instead of the controller.
func (b *PathBuilder) Build(id Identifier, nodeID string) (ResourcePath, error) {
	return b.BuildIn(StoreData, id, nodeID)
}

// BuildIn is Build for an explicit store.
func (b *PathBuilder) BuildIn(store Store, id Identifier, nodeID string) (ResourcePath, error) {
	rel, leafList, err := b.relative(id)
	if err != nil {
		return ResourcePath{}, err
	}
	return ResourcePath{Path: b.prefix(store, nodeID) + rel, LeafList: leafList}, nil
}

// Operation returns the path of rpc, given as "module:name".
func (b *PathBuilder) Operation(rpc, nodeID string) ResourcePath {
	rel := strings.TrimPrefix(rpc, "/")
	return ResourcePath{Path: b.prefix(StoreOperations, nodeID) + "/" + escape(rel)}
}

func (b *PathBuilder) prefix(store Store, nodeID string) string {
	if nodeID == "" {
		return "/" + string(store)
	}
	return fmt.Sprintf("/%s/%s/%s=%s/%s", store, b.mount.Root, b.mount.Node, escape(nodeID), b.mount.Indicator)
}

func (b *PathBuilder) relative(id Identifier) (string, bool, error) {
	if id.Len() == 0 {
		return "", false, pathError(id, "empty identifier", nil)
	}
	reg := b.mapper.Registry()
	var (
		sb       strings.Builder
		module   string
		leafList bool
	)
	segs := id.segs
	for i, s := range segs {
		d, err := reg.Describe(s.Type)
		if err != nil {
			return "", false, pathError(id, "segment type is not registered", err)
		}
		if s.Field != "" {
			if i != len(segs)-1 {
				return "", false, pathError(id, "a leaf must be the last segment", nil)
			}
			f, ok := d.Field(s.Field)
			if !ok {
				return "", false, pathError(id, fmt.Sprintf("%s has no field %s", d.Name, s.Field), nil)
			}
			name := b.mapper.WireName(d, f)
			if d.Module != module {
				name = d.Module + ":" + name
			}
			sb.WriteByte('/')
			sb.WriteString(escape(name))
			leafList = f.Kind == yangwire.KindList && f.ElemKind != yangwire.KindNested
			continue
		}
		if !d.ChildOf {
			continue
		}
		name := d.QName.Name
		if d.QName.Module != module {
			name = d.QName.Module + ":" + name
			module = d.QName.Module
		}
		sb.WriteByte('/')
		sb.WriteString(escape(name))
		if s.Key != nil {
			if d.Key != nil && !keyMatches(s.Key, d.Key) {
				return "", false, pathError(id, fmt.Sprintf("key %T does not match %s", s.Key, d.Key), nil)
			}
			key, ok := keyText(s.Key)
			if !ok {
				return "", false, pathError(id, fmt.Sprintf("no usable value in key %T", s.Key), nil)
			}
			sb.WriteByte('=')
			sb.WriteString(escape(key))
		}
	}
	if sb.Len() == 0 {
		return "", false, pathError(id, "no addressable segment", nil)
	}
	return sb.String(), leafList, nil
}

func pathError(id Identifier, detail string, cause error) error {
	return yangwire.NewError(yangwire.CodeClassResolution).
		Path(strings.Split(strings.TrimPrefix(id.String(), "/"), "/")...).
		Detail("no viable path: %s", detail).
		Cause(cause).
		Build()
}

func keyMatches(key any, want reflect.Type) bool {
	t := reflect.TypeOf(key)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == want {
		return true
	}
	// a bare scalar stands in for a single-field key
	return t.Kind() != reflect.Struct
}

// keyText renders a list key. Composite keys yield their first usable field.
func keyText(key any) (string, bool) {
	return keyValueText(reflect.ValueOf(key), 0)
}

func keyValueText(v reflect.Value, depth int) (string, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "", false
	}
	if ts, ok := v.Interface().(yangwire.TypedScalar); ok {
		return keyValueText(reflect.ValueOf(ts.ScalarValue()), depth+1)
	}
	if en, ok := v.Interface().(yangwire.Enumeration); ok {
		name := en.EnumName()
		if name == "" {
			return "", false
		}
		return strings.ToLower(name[:1]) + name[1:], true
	}
	if v.Kind() == reflect.String {
		return v.String(), v.String() != ""
	}
	if tm, ok := v.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		return string(b), err == nil
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}
	if v.Kind() == reflect.Struct {
		if depth > 1 {
			return "", false
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() || sf.Tag.Get("yang") == "-" {
				continue
			}
			if s, ok := keyValueText(v.Field(i), depth+1); ok {
				return s, true
			}
		}
		return "", false
	}
	return fmt.Sprint(v.Interface()), true
}

// escape percent-encodes one path segment. '/' ',' and ' ' are escaped; ':'
// stays as the module separator.
func escape(s string) string {
	return url.PathEscape(s)
}
