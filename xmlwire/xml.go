// Package xmlwire renders wire trees as NETCONF/RESTCONF XML and reads them
// back.
package xmlwire

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	yangwire "github.com/reoring/yangwire"
)

// ContentType is the RESTCONF media type for XML payloads.
const ContentType = "application/yang-data+xml"

// ModuleLookup maps a namespace URI to the module that declares it.
// *yangwire.Registry satisfies it.
type ModuleLookup interface {
	ModuleByNamespace(ns string) (*yangwire.Module, bool)
}

// Options tune rendering.
type Options struct {
	// Indent, when not empty, pretty-prints with this indent per level.
	Indent string
	// Declaration prepends an <?xml ...?> header.
	Declaration bool
}

// Marshal renders root as XML. The root always declares its namespace.
func Marshal(root *yangwire.Element, opts ...Options) ([]byte, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if root == nil {
		return nil, errors.New("xmlwire: nil root")
	}
	var buf bytes.Buffer
	if o.Declaration {
		buf.WriteString(xml.Header)
	}
	if err := write(&buf, root, o, 0, ""); err != nil {
		return nil, err
	}
	if o.Indent != "" {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func write(w *bytes.Buffer, el *yangwire.Element, o Options, level int, inherited string) error {
	if el.Name == "" {
		return fmt.Errorf("xmlwire: element without name at level %d", level)
	}
	if o.Indent != "" && level > 0 {
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(o.Indent, level))
	}
	w.WriteByte('<')
	w.WriteString(el.Name)
	scope := inherited
	switch {
	case el.Prefix != "" && el.Namespace != "":
		writeAttr(w, "xmlns:"+el.Prefix, el.Namespace)
	case el.Namespace != "" && el.Namespace != inherited:
		writeAttr(w, "xmlns", el.Namespace)
		scope = el.Namespace
	}
	if len(el.Children) == 0 && (el.Null || el.Text == "") {
		w.WriteString("/>")
		return nil
	}
	w.WriteByte('>')
	if len(el.Children) == 0 {
		text := el.Text
		if el.Prefix != "" {
			text = el.Prefix + ":" + text
		}
		if err := xml.EscapeText(w, []byte(text)); err != nil {
			return err
		}
	} else {
		for _, c := range el.Children {
			if err := write(w, c, o, level+1, scope); err != nil {
				return err
			}
		}
		if o.Indent != "" {
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(o.Indent, level))
		}
	}
	w.WriteString("</")
	w.WriteString(el.Name)
	w.WriteByte('>')
	return nil
}

func writeAttr(w *bytes.Buffer, name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	_ = xml.EscapeText(w, []byte(value))
	w.WriteByte('"')
}

// Unmarshal parses one XML document into a wire tree. modules may be nil.
func Unmarshal(data []byte, modules ModuleLookup) (*yangwire.Element, error) {
	return Decode(bytes.NewReader(data), modules)
}

// Decode reads one XML document from r.
func Decode(r io.Reader, modules ModuleLookup) (*yangwire.Element, error) {
	dec := xml.NewDecoder(r)
	p := &parser{dec: dec, modules: modules}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.New("xmlwire: no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("xmlwire: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return p.element(se, "", nil)
		}
	}
}

// UnmarshalAll parses a sequence of top-level elements, as returned for
// leaf-list reads.
func UnmarshalAll(data []byte, modules ModuleLookup) ([]*yangwire.Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	p := &parser{dec: dec, modules: modules}
	var out []*yangwire.Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("xmlwire: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			el, err := p.element(se, "", nil)
			if err != nil {
				return nil, err
			}
			out = append(out, el)
		}
	}
}

type parser struct {
	dec     *xml.Decoder
	modules ModuleLookup
}

func (p *parser) element(se xml.StartElement, inherited string, prefixes map[string]string) (*yangwire.Element, error) {
	el := &yangwire.Element{Name: se.Name.Local}
	if ns := se.Name.Space; ns != "" && ns != inherited {
		el.Namespace = ns
		el.Module = p.module(ns)
	}
	scope := inherited
	if se.Name.Space != "" {
		scope = se.Name.Space
	}
	local, copied := prefixes, false
	for _, a := range se.Attr {
		if a.Name.Space != "xmlns" {
			continue
		}
		if !copied {
			local = make(map[string]string, len(prefixes)+1)
			for k, v := range prefixes {
				local[k] = v
			}
			copied = true
		}
		local[a.Name.Local] = a.Value
	}
	var text strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("xmlwire: inside <%s>: %w", el.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c, err := p.element(t, scope, local)
			if err != nil {
				return nil, err
			}
			el.Append(c)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(el.Children) == 0 {
				p.leafText(el, strings.TrimSpace(text.String()), local)
			}
			return el, nil
		}
	}
}

// leafText splits a "p:value" text whose prefix is declared in scope.
func (p *parser) leafText(el *yangwire.Element, text string, prefixes map[string]string) {
	el.Text = text
	pfx, name := yangwire.SplitQualified(text)
	if pfx == "" {
		return
	}
	ns, ok := prefixes[pfx]
	if !ok {
		return
	}
	el.Prefix, el.Text = pfx, name
	el.Namespace, el.Module = ns, p.module(ns)
}

func (p *parser) module(ns string) string {
	if p.modules == nil {
		return ""
	}
	if m, ok := p.modules.ModuleByNamespace(ns); ok {
		return m.Name
	}
	return ""
}
