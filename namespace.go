package yangwire

import "strings"

// NamespaceRule maps a symbolic type-name prefix to a namespace. It covers
// typedefs and enums, which carry no qualified name of their own.
type NamespaceRule struct {
	Prefix    string `yaml:"prefix" json:"prefix" toml:"prefix"`
	Namespace string `yaml:"namespace" json:"namespace" toml:"namespace"`
	Module    string `yaml:"module" json:"module" toml:"module"`
}

// NamespaceResolver derives the namespace that scopes a field value.
type NamespaceResolver struct {
	fallback []NamespaceRule
	suppress []string
}

// NewNamespaceResolver builds a resolver from a fallback table and a list of
// root-type name prefixes under which no namespace is emitted.
func NewNamespaceResolver(fallback []NamespaceRule, suppress []string) *NamespaceResolver {
	return &NamespaceResolver{
		fallback: append([]NamespaceRule(nil), fallback...),
		suppress: append([]string(nil), suppress...),
	}
}

// Resolve returns the namespace and module for a value whose declared type is
// declared and, for identity references, whose target is target. Either may be
// nil. Steps: suppression under root, declared qualified name, target
// qualified name, fallback table, nothing.
func (nr *NamespaceResolver) Resolve(declared, target, root *TypeDescriptor) (ns, module string) {
	if nr.Suppressed(root) {
		return "", ""
	}
	if declared != nil && declared.QName.Namespace != "" {
		return declared.QName.Namespace, declared.QName.Module
	}
	if target != nil && target.QName.Namespace != "" {
		return target.QName.Namespace, target.QName.Module
	}
	for _, d := range []*TypeDescriptor{declared, target} {
		if d == nil {
			continue
		}
		for _, rule := range nr.fallback {
			if strings.HasPrefix(d.Name, rule.Prefix) {
				return rule.Namespace, rule.Module
			}
		}
	}
	return "", ""
}

// Suppressed reports whether root belongs to a subtree without namespaces.
func (nr *NamespaceResolver) Suppressed(root *TypeDescriptor) bool {
	if root == nil {
		return false
	}
	for _, p := range nr.suppress {
		if strings.HasPrefix(root.Name, p) {
			return true
		}
	}
	return false
}
