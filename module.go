package yangwire

import (
	"reflect"
)

// Module describes one YANG module: its namespace and the Go types bound to
// its schema nodes. Build it once at startup and hand it to Registry.Register.
type Module struct {
	Name      string
	Namespace string
	Revision  string
	Prefix    string

	specs []TypeSpec
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// Revision sets the module revision date.
func Revision(rev string) ModuleOption { return func(m *Module) { m.Revision = rev } }

// Prefix sets the module's preferred XML prefix.
func Prefix(p string) ModuleOption { return func(m *Module) { m.Prefix = p } }

// NewModule creates a module with safe defaults (prefix = name).
func NewModule(name, namespace string, opts ...ModuleOption) *Module {
	m := &Module{Name: name, Namespace: namespace, Prefix: name}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Add appends type bindings to the module.
func (m *Module) Add(specs ...TypeSpec) *Module {
	m.specs = append(m.specs, specs...)
	return m
}

// QName returns the qualified name of local within m.
func (m *Module) QName(local string) QName {
	return QName{Namespace: m.Namespace, Revision: m.Revision, Module: m.Name, Name: local}
}

// TypeSpec binds one Go type to a schema role. Use the constructors below.
type TypeSpec struct {
	goType  reflect.Type
	kind    Kind
	local   string
	childOf bool
	key     reflect.Type
	owner   reflect.Type
	values  []any
	cases   []reflect.Type
	parser  func(string) (reflect.Value, error)
	parserT reflect.Type
}

// Container binds struct T to a container node.
func Container[T any](name string) TypeSpec {
	return TypeSpec{goType: reflect.TypeFor[T](), kind: KindNested, local: name, childOf: true}
}

// List binds struct T to a list node whose entries are keyed by K.
func List[T, K any](name string) TypeSpec {
	return TypeSpec{goType: reflect.TypeFor[T](), kind: KindNested, local: name, childOf: true, key: reflect.TypeFor[K]()}
}

// Input binds struct T to an RPC input. Inputs are not addressable in paths.
func Input[T any]() TypeSpec {
	return TypeSpec{goType: reflect.TypeFor[T](), kind: KindNested, local: "input"}
}

// Output binds struct T to an RPC output.
func Output[T any]() TypeSpec {
	return TypeSpec{goType: reflect.TypeFor[T](), kind: KindNested, local: "output"}
}

// Augmentation binds struct F as an extension facet of Owner. Owner must embed
// Augmentations.
func Augmentation[F, Owner any]() TypeSpec {
	return TypeSpec{goType: reflect.TypeFor[F](), kind: KindFacet, owner: reflect.TypeFor[Owner]()}
}

// Identity binds T to an identity.
func Identity[T any](name string) TypeSpec {
	return TypeSpec{goType: reflect.TypeFor[T](), kind: KindIdentity, local: name}
}

// Enum binds enum type T and its constants.
func Enum[T Enumeration](values ...T) TypeSpec {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return TypeSpec{goType: reflect.TypeFor[T](), kind: KindEnum, values: vs}
}

// TypedefOption configures a Typedef binding.
type TypedefOption func(*TypeSpec)

// WithParser registers the factory that builds the typedef from its wire text.
func WithParser[T any](fn func(string) (T, error)) TypedefOption {
	return func(s *TypeSpec) {
		s.parserT = reflect.TypeFor[T]()
		s.parser = func(text string) (reflect.Value, error) {
			v, err := fn(text)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(v), nil
		}
	}
}

// Typedef binds T, which must implement TypedScalar, to a typedef.
func Typedef[T any](opts ...TypedefOption) TypeSpec {
	s := TypeSpec{goType: reflect.TypeFor[T](), kind: KindTypedScalar}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Choice binds interface type I to a choice whose cases are the concrete types
// of cases. Every case must implement I.
func Choice[I any](cases ...any) TypeSpec {
	s := TypeSpec{goType: reflect.TypeFor[I](), kind: KindChoice}
	for _, c := range cases {
		s.cases = append(s.cases, indirect(reflect.TypeOf(c)))
	}
	return s
}
