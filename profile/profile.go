// Package profile loads the TOML runtime profile: mapper settings and the
// RESTCONF endpoint a client talks to.
package profile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/restconf"
)

// Profile is the root of a profile file.
type Profile struct {
	Name     string         `toml:"name"`
	Manifest string         `toml:"manifest"`
	Mapper   MapperConfig   `toml:"mapper"`
	Restconf RestconfConfig `toml:"restconf"`
}

// MapperConfig mirrors the construction-time yangwire.Config.
type MapperConfig struct {
	ExcludeNullValues      bool                     `toml:"exclude_null_values"`
	NamingExceptions       []string                 `toml:"naming_exceptions"`
	NamespaceFallback      []yangwire.NamespaceRule `toml:"namespace_fallback"`
	SuppressNamespaceUnder []string                 `toml:"suppress_namespace_under"`
	IdentityAliases        map[string]string        `toml:"identity_aliases"`
}

// RestconfConfig configures the client and its HTTP transport.
type RestconfConfig struct {
	URL      string         `toml:"url"`
	Base     string         `toml:"base"`
	Username string         `toml:"username"`
	Password string         `toml:"password"`
	Codec    string         `toml:"codec"`
	Timeout  duration       `toml:"timeout"`
	Mount    restconf.Mount `toml:"mount"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Load reads, defaults and validates the profile at path.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("profile load failed (%s): %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("profile parse failed (%s): %w", path, err)
	}
	return p, nil
}

// Parse decodes, defaults and validates a profile.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	applyDefaults(&p)
	if err := Validate(p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func applyDefaults(p *Profile) {
	if p.Name == "" {
		p.Name = "default"
	}
	r := &p.Restconf
	if r.Base == "" {
		r.Base = restconf.DefaultBase
	}
	if r.Codec == "" {
		r.Codec = "json"
	}
	if r.Timeout.Duration == 0 {
		r.Timeout.Duration = restconf.DefaultTimeout
	}
	if r.Mount == (restconf.Mount{}) {
		r.Mount = restconf.DefaultMount
	}
}

// Validate checks a defaulted profile.
func Validate(p Profile) error {
	switch p.Restconf.Codec {
	case "json", "xml", "cbor":
	default:
		return fmt.Errorf("restconf.codec %q is not one of json, xml, cbor", p.Restconf.Codec)
	}
	if u := strings.TrimSpace(p.Restconf.URL); u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("restconf.url %q must be http or https", u)
	}
	for i, r := range p.Mapper.NamespaceFallback {
		if r.Prefix == "" || r.Namespace == "" {
			return fmt.Errorf("mapper.namespace_fallback[%d] needs prefix and namespace", i)
		}
	}
	return nil
}

// Config layers the profile's mapper settings over base.
func (p Profile) Config(base yangwire.Config) yangwire.Config {
	cfg := base
	mc := p.Mapper
	cfg.ExcludeNullValues = cfg.ExcludeNullValues || mc.ExcludeNullValues
	if len(mc.NamingExceptions) > 0 {
		cfg.Naming = yangwire.NewNaming(append(cfg.Naming.Exceptions(), mc.NamingExceptions...)...)
	}
	cfg.NamespaceFallback = append(append([]yangwire.NamespaceRule(nil), cfg.NamespaceFallback...), mc.NamespaceFallback...)
	cfg.SuppressNamespaceUnder = append(append([]string(nil), cfg.SuppressNamespaceUnder...), mc.SuppressNamespaceUnder...)
	if len(mc.IdentityAliases) > 0 {
		aliases := make(map[string]string, len(cfg.IdentityAliases)+len(mc.IdentityAliases))
		for k, v := range cfg.IdentityAliases {
			aliases[k] = v
		}
		for k, v := range mc.IdentityAliases {
			aliases[k] = v
		}
		cfg.IdentityAliases = aliases
	}
	return cfg
}

// Client builds a RESTCONF client over HTTP for m.
func (p Profile) Client(m *yangwire.Mapper) (*restconf.Client, error) {
	if p.Restconf.URL == "" {
		return nil, fmt.Errorf("profile %s has no restconf.url", p.Name)
	}
	codec, ok := restconf.CodecByName(p.Restconf.Codec, m.Registry())
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", p.Restconf.Codec)
	}
	t := &restconf.HTTPTransport{
		BaseURL:  p.Restconf.URL,
		Username: p.Restconf.Username,
		Password: p.Restconf.Password,
	}
	return restconf.NewClient(m, t,
		restconf.WithCodec(codec),
		restconf.WithBase(p.Restconf.Base),
		restconf.WithTimeout(p.Restconf.Timeout.Duration),
		restconf.WithPathOptions(restconf.WithMount(p.Restconf.Mount)),
	), nil
}
