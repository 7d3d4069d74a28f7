package yangwire

// Config is fixed when a Mapper is constructed.
type Config struct {
	// ExcludeNullValues drops nil fields instead of emitting empty elements.
	ExcludeNullValues bool
	Naming            *Naming
	Overrides         *Overrides
	// NamespaceFallback scopes typedef and enum values by symbolic-name prefix.
	NamespaceFallback []NamespaceRule
	// SuppressNamespaceUnder lists root-type name prefixes whose descendants
	// are written without namespaces.
	SuppressNamespaceUnder []string
	// IdentityAliases maps wire identity names to registered type names when
	// the default normalization does not find them.
	IdentityAliases map[string]string
}

// DefaultConfig returns the settings used against OpenROADM devices.
func DefaultConfig() Config {
	return Config{
		Naming:    DefaultNaming(),
		Overrides: NewOverrides(),
		NamespaceFallback: []NamespaceRule{
			{Prefix: "org-openroadm-common-types.", Namespace: "http://org/openroadm/common-types", Module: "org-openroadm-common-types"},
			{Prefix: "org-openroadm-port-types.", Namespace: "http://org/openroadm/port/types", Module: "org-openroadm-port-types"},
		},
		SuppressNamespaceUnder: []string{
			"org-openroadm-device.CircuitPacks",
			"org-openroadm-device.RoadmConnections",
		},
	}
}
