package yangwire

// Kind classifies registered types and their fields. The set is closed and is
// decided when a registry is frozen.
type Kind uint8

const (
	KindScalar Kind = iota
	KindEnum
	KindTypedScalar
	KindNested
	KindChoice
	KindIdentity
	KindList
	KindFacet
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindTypedScalar:
		return "typed-scalar"
	case KindNested:
		return "nested"
	case KindChoice:
		return "choice"
	case KindIdentity:
		return "identity"
	case KindList:
		return "list"
	case KindFacet:
		return "facet"
	default:
		return "unknown"
	}
}
