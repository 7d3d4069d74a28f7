// yangwire converts OpenROADM documents between the RESTCONF encodings and
// prints RESTCONF resource paths.
//
// Usage:
//
//	yangwire convert --from xml --to json < device.xml
//	yangwire path --node roadm-a interface=ots-deg1
//	yangwire get --profile lab.toml --node roadm-a info
//	yangwire version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	yangwire "github.com/reoring/yangwire"
	"github.com/reoring/yangwire/cborwire"
	"github.com/reoring/yangwire/jsonwire"
	"github.com/reoring/yangwire/manifest"
	"github.com/reoring/yangwire/openroadm"
	"github.com/reoring/yangwire/profile"
	"github.com/reoring/yangwire/restconf"
	"github.com/reoring/yangwire/xmlwire"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}
	switch args[0] {
	case "convert":
		return convertCmd(args[1:], in, out)
	case "path":
		return pathCmd(args[1:], out)
	case "get":
		return getCmd(args[1:], out)
	case "version":
		_, err := fmt.Fprintln(out, version)
		return err
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `yangwire

Usage:
  yangwire convert --from xml|json|cbor --to xml|json|cbor [--manifest file] [--decode] < in > out
  yangwire path [--node id] [--store data|operations] [--mount-root r] target
  yangwire get --profile file [--node id] target
  yangwire version

Targets:
  device, info, srg=<n>, interface=<name>, circuit-pack=<name>, roadm-connection=<name>`)
}

type common struct {
	verbose  bool
	manifest string
}

func (c *common) addFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&c.manifest, "manifest", "", "YAML or JSONC manifest with extra augmentations and tables")
}

// mapper builds the OpenROADM mapper, layering the manifest and profile when
// given.
func (c *common) mapper(p *profile.Profile) (*yangwire.Mapper, error) {
	if c.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		yangwire.SetLogger(l)
	}
	reg, err := openroadm.NewRegistry()
	if err != nil {
		return nil, err
	}
	cfg := openroadm.Config()
	if p != nil {
		cfg = p.Config(cfg)
	}
	path := c.manifest
	if path == "" && p != nil {
		path = p.Manifest
	}
	if path != "" {
		mf, err := manifest.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := mf.Apply(reg, &cfg); err != nil {
			return nil, err
		}
	}
	return yangwire.NewMapper(reg, cfg)
}

func convertCmd(args []string, in io.Reader, out io.Writer) error {
	var (
		c        common
		from, to string
		indent   bool
		decode   bool
	)
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	c.addFlags(fs)
	fs.StringVar(&from, "from", "xml", "input encoding: xml, json or cbor")
	fs.StringVar(&to, "to", "json", "output encoding: xml, json or cbor")
	fs.BoolVar(&indent, "indent", true, "indent xml and json output")
	fs.BoolVar(&decode, "decode", false, "round-trip through the typed device model and report dropped fields")
	if err := fs.Parse(args); err != nil {
		return err
	}
	m, err := c.mapper(nil)
	if err != nil {
		return err
	}
	reg := m.Registry()
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	var root *yangwire.Element
	switch from {
	case "xml":
		root, err = xmlwire.Unmarshal(data, reg)
	case "json":
		root, err = jsonwire.Unmarshal(data, reg)
	case "cbor":
		root, err = cborwire.Unmarshal(data, reg)
	default:
		return fmt.Errorf("unknown input encoding %q", from)
	}
	if err != nil {
		return err
	}
	if decode {
		if root, err = retype(m, root); err != nil {
			return err
		}
	}
	pad := ""
	if indent {
		pad = "  "
	}
	var b []byte
	switch to {
	case "xml":
		b, err = xmlwire.Marshal(root, xmlwire.Options{Indent: pad, Declaration: true})
	case "json":
		b, err = jsonwire.Marshal(root, jsonwire.Options{Indent: pad})
	case "cbor":
		b, err = cborwire.Marshal(root)
	default:
		return fmt.Errorf("unknown output encoding %q", to)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(b)
	return err
}

// retype decodes root into the device model and encodes it again, so the
// output carries the mapper's own namespaces and naming.
func retype(m *yangwire.Mapper, root *yangwire.Element) (*yangwire.Element, error) {
	var v any
	switch root.Name {
	case "org-openroadm-device":
		v = &openroadm.OrgOpenroadmDevice{}
	case "info":
		v = &openroadm.Info{}
	case "interface":
		v = &openroadm.Interface{}
	case "shared-risk-group":
		v = &openroadm.SharedRiskGroup{}
	case "circuit-packs":
		v = &openroadm.CircuitPacks{}
	case "roadm-connections":
		v = &openroadm.RoadmConnections{}
	default:
		return nil, fmt.Errorf("no device type for root %q", root.Name)
	}
	issues, err := m.Decode(root, v)
	if err != nil {
		return nil, err
	}
	for _, is := range issues {
		yangwire.Logger().Warn("dropped", zap.String("path", is.Path), zap.String("code", is.Code))
	}
	doc, err := m.Encode(v)
	if err != nil {
		return nil, err
	}
	return doc.Root, nil
}

func pathCmd(args []string, out io.Writer) error {
	var (
		c     common
		node  string
		store string
		mount restconf.Mount
	)
	fs := pflag.NewFlagSet("path", pflag.ContinueOnError)
	c.addFlags(fs)
	fs.StringVar(&node, "node", "", "mounted node id")
	fs.StringVar(&store, "store", string(restconf.StoreData), "resource root: data or operations")
	fs.StringVar(&mount.Root, "mount-root", restconf.DefaultMount.Root, "mount topology path")
	fs.StringVar(&mount.Node, "mount-node", restconf.DefaultMount.Node, "mount node list name")
	fs.StringVar(&mount.Indicator, "mount-indicator", restconf.DefaultMount.Indicator, "mount point indicator")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("path takes exactly one target")
	}
	m, err := c.mapper(nil)
	if err != nil {
		return err
	}
	paths := restconf.NewPathBuilder(m, restconf.WithMount(mount))
	if restconf.Store(store) == restconf.StoreOperations {
		_, err := fmt.Fprintln(out, restconf.DefaultBase+paths.Operation(fs.Arg(0), node).Path)
		return err
	}
	id, _, err := target(fs.Arg(0))
	if err != nil {
		return err
	}
	rp, err := paths.BuildIn(restconf.Store(store), id, node)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, restconf.DefaultBase+rp.Path)
	return err
}

func getCmd(args []string, out io.Writer) error {
	var (
		c        common
		node     string
		profPath string
	)
	fs := pflag.NewFlagSet("get", pflag.ContinueOnError)
	c.addFlags(fs)
	fs.StringVar(&node, "node", "", "mounted node id")
	fs.StringVar(&profPath, "profile", "", "TOML profile with the RESTCONF endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || profPath == "" {
		return errors.New("get takes --profile and exactly one target")
	}
	p, err := profile.Load(profPath)
	if err != nil {
		return err
	}
	m, err := c.mapper(&p)
	if err != nil {
		return err
	}
	client, err := p.Client(m)
	if err != nil {
		return err
	}
	id, v, err := target(fs.Arg(0))
	if err != nil {
		return err
	}
	res, err := client.Read(context.Background(), id, node, v)
	if err != nil {
		return err
	}
	if !res.Found {
		return fmt.Errorf("%s not found", fs.Arg(0))
	}
	doc, err := m.Encode(v)
	if err != nil {
		return err
	}
	b, err := jsonwire.Marshal(doc.Root, jsonwire.Options{Indent: "  "})
	if err != nil {
		return err
	}
	_, err = out.Write(b)
	return err
}

// target parses a command-line target into an identifier and a value to read
// it into.
func target(s string) (restconf.Identifier, any, error) {
	device := restconf.Root[openroadm.OrgOpenroadmDevice]()
	name, key, keyed := strings.Cut(s, "=")
	if keyed && key == "" {
		return restconf.Identifier{}, nil, fmt.Errorf("target %q has an empty key", s)
	}
	switch name {
	case "device":
		return device, &openroadm.OrgOpenroadmDevice{}, nil
	case "info":
		return restconf.Child[openroadm.Info](device), &openroadm.Info{}, nil
	case "srg":
		n, err := strconv.ParseUint(key, 10, 16)
		if err != nil {
			return restconf.Identifier{}, nil, fmt.Errorf("srg number %q: %w", key, err)
		}
		num := uint16(n)
		return restconf.Keyed[openroadm.SharedRiskGroup](device, openroadm.SharedRiskGroupKey{SrgNumber: &num}), &openroadm.SharedRiskGroup{}, nil
	case "interface":
		return restconf.Keyed[openroadm.Interface](device, openroadm.InterfaceKey{Name: &key}), &openroadm.Interface{}, nil
	case "circuit-pack":
		return restconf.Keyed[openroadm.CircuitPacks](device, openroadm.CircuitPacksKey{CircuitPackName: &key}), &openroadm.CircuitPacks{}, nil
	case "roadm-connection":
		return restconf.Keyed[openroadm.RoadmConnections](device, key), &openroadm.RoadmConnections{}, nil
	}
	return restconf.Identifier{}, nil, fmt.Errorf("unknown target %q", s)
}
