package yangwire

import (
	"sort"
	"strings"
	"unicode"
)

// Naming converts code identifiers to wire names. Identifiers on the exception
// list pass through unchanged.
type Naming struct {
	exceptions map[string]struct{}
}

// NewNaming returns a strategy with the given exceptions.
func NewNaming(exceptions ...string) *Naming {
	n := &Naming{exceptions: make(map[string]struct{}, len(exceptions))}
	for _, e := range exceptions {
		n.exceptions[e] = struct{}{}
	}
	return n
}

// DefaultNaming keeps ifName and adminStatus as they are.
func DefaultNaming() *Naming { return NewNaming("ifName", "adminStatus") }

// ToWireName hyphenates ident unless it is an exception.
//
//	spanLossReceive -> span-loss-receive
//	NodeID          -> node-id
//	ifName          -> ifName (exception)
func (n *Naming) ToWireName(ident string) string {
	if n != nil {
		if _, ok := n.exceptions[ident]; ok {
			return ident
		}
	}
	return Kebab(ident)
}

// Exceptions returns the exception list in sorted order.
func (n *Naming) Exceptions() []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.exceptions))
	for e := range n.exceptions {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Kebab lowercases s and puts a hyphen before each case transition.
// Acronyms stay together: XMLParser -> xml-parser, ODU4 -> odu4.
func Kebab(s string) string {
	tokens := tokenizeCamelCase(s)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return strings.Join(tokens, "-")
}

// Identifier turns a Go field name into the lower-camel identifier that the
// exception list and overrides are keyed by: IfName -> ifName, OTSDeg -> otsDeg.
func Identifier(goName string) string {
	tokens := tokenizeCamelCase(goName)
	if len(tokens) == 0 {
		return ""
	}
	tokens[0] = strings.ToLower(tokens[0])
	return strings.Join(tokens, "")
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "span_loss" -> ["span", "loss"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// orderID -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}
	// XMLParser -> split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	return isUpper && isPrevUpper && hasNextLower
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
