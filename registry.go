package yangwire

import (
	"reflect"
	"strings"
)

// Resolver resolves a symbolic type name to its descriptor.
type Resolver interface {
	Resolve(name string) (*TypeDescriptor, error)
}

// Registry holds the descriptors of every registered module. Populate it
// during setup, then Freeze it; a frozen registry is read-only and safe for
// concurrent use.
type Registry struct {
	modules   []*Module
	byModule  map[string]*Module
	byNS      map[string]*Module
	types     []*TypeDescriptor
	byName    map[string]*TypeDescriptor
	byType    map[reflect.Type]*TypeDescriptor
	facets    map[reflect.Type][]*TypeDescriptor
	pending   []pendingAugment
	secondary Resolver
	frozen    bool
}

type pendingAugment struct {
	owner  string
	facets []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byModule: map[string]*Module{},
		byNS:     map[string]*Module{},
		byName:   map[string]*TypeDescriptor{},
		byType:   map[reflect.Type]*TypeDescriptor{},
		facets:   map[reflect.Type][]*TypeDescriptor{},
	}
}

// WithSecondary sets the resolver consulted when a name is not found here.
func (r *Registry) WithSecondary(res Resolver) *Registry {
	r.secondary = res
	return r
}

// Register compiles m and adds its types.
func (r *Registry) Register(m *Module) error {
	if r.frozen {
		return NewError(CodeRegistration).Type(m.Name).Detail("registry is frozen").Build()
	}
	if _, dup := r.byModule[m.Name]; dup {
		return NewError(CodeRegistration).Type(m.Name).Detail("module already registered").Build()
	}
	var compiled []*TypeDescriptor
	for _, s := range m.specs {
		ds, err := compile(m, s)
		if err != nil {
			return err
		}
		compiled = append(compiled, ds...)
	}
	for _, d := range compiled {
		if _, dup := r.byName[d.Name]; dup {
			return NewError(CodeRegistration).Type(d.Name).Detail("type already registered").Build()
		}
		if prev, dup := r.byType[d.GoType]; dup {
			return NewError(CodeRegistration).Type(d.Name).Detail("Go type already bound to %s", prev.Name).Build()
		}
	}
	for _, d := range compiled {
		r.types = append(r.types, d)
		r.byName[d.Name] = d
		r.byType[d.GoType] = d
		if d.Kind == KindFacet {
			r.facets[d.Owner] = append(r.facets[d.Owner], d)
		}
	}
	r.modules = append(r.modules, m)
	r.byModule[m.Name] = m
	if m.Namespace != "" {
		r.byNS[m.Namespace] = m
	}
	return nil
}

// MustRegister registers modules and panics on error. Meant for package-level
// setup of static bindings.
func (r *Registry) MustRegister(mods ...*Module) *Registry {
	for _, m := range mods {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
	return r
}

// Augment adds augmentation rows by symbolic name. Rows are resolved when the
// registry is frozen; facets already bound to the owner are not added twice.
func (r *Registry) Augment(owner string, facets ...string) error {
	if r.frozen {
		return NewError(CodeRegistration).Type(owner).Detail("registry is frozen").Build()
	}
	r.pending = append(r.pending, pendingAugment{owner: owner, facets: facets})
	return nil
}

// Freeze resolves pending augmentation rows and links every field. It is a
// no-op on a frozen registry.
func (r *Registry) Freeze() error {
	if r.frozen {
		return nil
	}
	for _, p := range r.pending {
		od, err := r.Resolve(p.owner)
		if err != nil {
			return err
		}
		for _, fn := range p.facets {
			fd, err := r.Resolve(fn)
			if err != nil {
				return err
			}
			if fd.Kind != KindFacet {
				return NewError(CodeRegistration).Type(fd.Name).Detail("not an augmentation").Build()
			}
			if !containsDesc(r.facets[od.GoType], fd) {
				r.facets[od.GoType] = append(r.facets[od.GoType], fd)
			}
		}
	}
	r.pending = nil
	for owner := range r.facets {
		od, ok := r.byType[owner]
		if !ok {
			return NewError(CodeClassResolution).Type(goTypeName(owner)).Detail("augmentation owner is not registered").Build()
		}
		if !od.Augmentable() {
			return NewError(CodeRegistration).Type(od.Name).Detail("augmented type does not embed Augmentations").Build()
		}
	}
	for _, d := range r.types {
		if err := r.link(d); err != nil {
			return err
		}
	}
	r.frozen = true
	return nil
}

// Frozen reports whether Freeze completed.
func (r *Registry) Frozen() bool { return r.frozen }

// Resolve finds a descriptor by symbolic name. The search order is: exact
// module-qualified name, simple Go type name across modules in registration
// order, dotted suffix or package-qualified Go name, then the secondary
// resolver.
func (r *Registry) Resolve(name string) (*TypeDescriptor, error) {
	name = strings.TrimSpace(name)
	if d, ok := r.byName[name]; ok {
		return d, nil
	}
	if !strings.ContainsAny(name, "./") {
		for _, d := range r.types {
			if d.GoType.Name() == name {
				return d, nil
			}
		}
	} else {
		for _, d := range r.types {
			if strings.HasSuffix(d.Name, "."+name) || goTypeName(d.GoType) == name {
				return d, nil
			}
		}
	}
	if r.secondary != nil {
		if d, err := r.secondary.Resolve(name); err == nil && d != nil {
			return d, nil
		}
	}
	return nil, NewError(CodeClassResolution).Type(name).Detail("no registered type").Build()
}

// Describe returns the descriptor bound to Go type t (pointers are followed).
func (r *Registry) Describe(t reflect.Type) (*TypeDescriptor, error) {
	t = indirect(t)
	if d, ok := r.byType[t]; ok {
		return d, nil
	}
	return nil, NewError(CodeClassResolution).Type(goTypeName(t)).Detail("Go type is not registered").Build()
}

// DescriptorOf returns the descriptor bound to T.
func DescriptorOf[T any](r *Registry) (*TypeDescriptor, error) {
	return r.Describe(reflect.TypeFor[T]())
}

// Facets returns the augmentations declared for owner, in declaration order.
func (r *Registry) Facets(owner reflect.Type) []*TypeDescriptor {
	return r.facets[indirect(owner)]
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []*Module { return append([]*Module(nil), r.modules...) }

// ModuleByName looks a module up by name.
func (r *Registry) ModuleByName(name string) (*Module, bool) {
	m, ok := r.byModule[name]
	return m, ok
}

// ModuleByNamespace looks a module up by namespace URI.
func (r *Registry) ModuleByNamespace(ns string) (*Module, bool) {
	m, ok := r.byNS[ns]
	return m, ok
}

// Types returns every descriptor in registration order.
func (r *Registry) Types() []*TypeDescriptor { return append([]*TypeDescriptor(nil), r.types...) }

func containsDesc(ds []*TypeDescriptor, d *TypeDescriptor) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
