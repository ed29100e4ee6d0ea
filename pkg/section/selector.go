package section

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/spatialnav/pkg/host"
)

// SelectorKind tags the variant held by a Selector.
type SelectorKind int

const (
	// SelectorUnset is the zero value: no selector given.
	SelectorUnset SelectorKind = iota
	// SelectorQuery resolves through the host's query language.
	SelectorQuery
	// SelectorElements is an explicit element list.
	SelectorElements
	// SelectorSection targets a section by id.
	SelectorSection
	// SelectorSectionDefault targets the default (or last) section.
	SelectorSectionDefault
	// SelectorBlocked explicitly forbids the move.
	SelectorBlocked
)

// Selector names a set of elements, a section, or an explicit block.
type Selector struct {
	kind     SelectorKind
	query    string
	elements []host.Element
	section  string
}

// ByQuery selects elements matching a host query.
func ByQuery(q string) Selector {
	return Selector{kind: SelectorQuery, query: q}
}

// ByElements selects an explicit set of elements.
func ByElements(els ...host.Element) Selector {
	return Selector{kind: SelectorElements, elements: append([]host.Element(nil), els...)}
}

// BySection targets the section with the given id.
func BySection(id string) Selector {
	return Selector{kind: SelectorSection, section: id}
}

// BySectionDefault targets the default section, falling back to the last
// focused one.
func BySectionDefault() Selector {
	return Selector{kind: SelectorSectionDefault}
}

// Blocked is the explicit "no way out" selector.
func Blocked() Selector {
	return Selector{kind: SelectorBlocked}
}

// ParseSelector reads the string form: "" blocks, "@" is the default
// section, "@id" is a section, anything else is a query.
func ParseSelector(s string) Selector {
	switch {
	case s == "":
		return Blocked()
	case s == "@":
		return BySectionDefault()
	case strings.HasPrefix(s, "@"):
		return BySection(s[1:])
	default:
		return ByQuery(s)
	}
}

// Kind returns the variant tag.
func (s Selector) Kind() SelectorKind { return s.kind }

// IsSet reports whether the selector was given at all.
func (s Selector) IsSet() bool { return s.kind != SelectorUnset }

// Query returns the query string of a SelectorQuery.
func (s Selector) Query() string { return s.query }

// SectionID returns the target of a SelectorSection.
func (s Selector) SectionID() string { return s.section }

// Elements returns the list of a SelectorElements.
func (s Selector) Elements() []host.Element { return s.elements }

// Resolve returns the elements the selector names. Section and block
// variants name no elements directly.
func (s Selector) Resolve(h host.Host) []host.Element {
	switch s.kind {
	case SelectorQuery:
		return h.Query(s.query)
	case SelectorElements:
		return append([]host.Element(nil), s.elements...)
	}
	return nil
}

// First returns the first element the selector names, or nil.
func (s Selector) First(h host.Host) host.Element {
	els := s.Resolve(h)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// Matches reports whether el belongs to the selector.
func (s Selector) Matches(h host.Host, el host.Element) bool {
	if el == nil {
		return false
	}
	switch s.kind {
	case SelectorQuery:
		return h.Matches(el, s.query)
	case SelectorElements:
		for _, candidate := range s.elements {
			if candidate == el {
				return true
			}
		}
	}
	return false
}

func (s Selector) String() string {
	switch s.kind {
	case SelectorQuery:
		return s.query
	case SelectorElements:
		return fmt.Sprintf("<%d elements>", len(s.elements))
	case SelectorSection:
		return "@" + s.section
	case SelectorSectionDefault:
		return "@"
	case SelectorBlocked:
		return `""`
	}
	return "<unset>"
}

// UnmarshalYAML decodes the string form.
func (s *Selector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: selector must be a string", node.Line)
	}
	*s = ParseSelector(node.Value)
	return nil
}
