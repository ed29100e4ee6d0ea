// Package section owns the named navigation sections: their partial
// configuration, their runtime memory (last focused element, previous move)
// and the navigability rules that decide which elements may take focus.
package section

import (
	"fmt"

	naverrors "github.com/odvcencio/spatialnav/pkg/errors"
	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
)

// Previous is the last move out of a section, kept for rememberSource.
type Previous = geometry.Previous[host.Element]

// Section is a named group of navigable elements.
type Section struct {
	ID     string
	Config Config

	lastFocused host.Element
	previous    *Previous
}

// LastFocused returns the element that last held focus in this section.
func (s *Section) LastFocused() host.Element { return s.lastFocused }

// Previous returns the last recorded move out of this section, or nil.
func (s *Section) Previous() *Previous { return s.previous }

// Registry holds every section in insertion order plus the global config.
// The zero value is not usable; construct with NewRegistry.
type Registry struct {
	host      host.Host
	global    Config
	sections  map[string]*Section
	order     []string
	idPool    int
	defaultID string
	lastID    string
}

// NewRegistry creates an empty registry resolving selectors through h.
func NewRegistry(h host.Host) *Registry {
	return &Registry{
		host:     h,
		global:   DefaultConfig(),
		sections: make(map[string]*Section),
	}
}

// Add registers a section. An empty id is replaced by a generated one.
func (r *Registry) Add(id string, cfg Config) (string, error) {
	if id == "" {
		id = r.generateID()
	}
	if _, exists := r.sections[id]; exists {
		return "", naverrors.SectionExists(id)
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	r.sections[id] = &Section{ID: id, Config: Merge(Config{}, cfg)}
	r.order = append(r.order, id)
	return id, nil
}

// Set merges cfg into a section's config, or into the global config when
// id is empty.
func (r *Registry) Set(id string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if id == "" {
		r.global = Merge(r.global, cfg)
		return nil
	}
	s, ok := r.sections[id]
	if !ok {
		return naverrors.SectionNotFound(id)
	}
	s.Config = Merge(s.Config, cfg)
	return nil
}

// Remove deletes a section. Removing the last focused section forgets it.
func (r *Registry) Remove(id string) (bool, error) {
	if id == "" {
		return false, naverrors.SectionIDRequired("remove")
	}
	if _, ok := r.sections[id]; !ok {
		return false, naverrors.SectionNotFound(id)
	}
	delete(r.sections, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.lastID == id {
		r.lastID = ""
	}
	return true, nil
}

// Disable hides a section from navigation. Returns false for unknown ids.
func (r *Registry) Disable(id string) bool {
	return r.setDisabled(id, true)
}

// Enable reverses Disable. Returns false for unknown ids.
func (r *Registry) Enable(id string) bool {
	return r.setDisabled(id, false)
}

func (r *Registry) setDisabled(id string, disabled bool) bool {
	s, ok := r.sections[id]
	if !ok {
		return false
	}
	s.Config.Disabled = Bool(disabled)
	return true
}

// SetDefaultSection chooses the section focused when nothing else applies.
// An empty id clears the default.
func (r *Registry) SetDefaultSection(id string) error {
	if id == "" {
		r.defaultID = ""
		return nil
	}
	if _, ok := r.sections[id]; !ok {
		return naverrors.SectionNotFound(id)
	}
	r.defaultID = id
	return nil
}

// DefaultSection returns the default section id.
func (r *Registry) DefaultSection() string { return r.defaultID }

// LastSection returns the most recently focused section id.
func (r *Registry) LastSection() string { return r.lastID }

// Reset forgets the focus memory of one section, or all when id is empty.
func (r *Registry) Reset(id string) {
	if id != "" {
		if s, ok := r.sections[id]; ok {
			s.lastFocused = nil
			s.previous = nil
		}
		return
	}
	for _, s := range r.sections {
		s.lastFocused = nil
		s.previous = nil
	}
}

// Clear removes every section and forgets the default and last ids.
// The global config survives.
func (r *Registry) Clear() {
	r.sections = make(map[string]*Section)
	r.order = nil
	r.defaultID = ""
	r.lastID = ""
}

// ResetIDs restarts generated id numbering.
func (r *Registry) ResetIDs() { r.idPool = 0 }

// Get returns a section by id.
func (r *Registry) Get(id string) (*Section, bool) {
	s, ok := r.sections[id]
	return s, ok
}

// IDs returns the section ids in insertion order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of sections.
func (r *Registry) Len() int { return len(r.sections) }

// Global returns the global config.
func (r *Registry) Global() Config { return r.global }

// Settings resolves a section's effective configuration. Unknown ids
// resolve to the global settings.
func (r *Registry) Settings(id string) Settings {
	var own Config
	if s, ok := r.sections[id]; ok {
		own = s.Config
	}
	return Resolve(r.global, own)
}

// Remember records the last move out of a section.
func (r *Registry) Remember(id string, prev Previous) {
	if s, ok := r.sections[id]; ok {
		p := prev
		s.previous = &p
	}
}

// SectionOf returns the first enabled section whose selector matches el.
func (r *Registry) SectionOf(el host.Element) string {
	if el == nil {
		return ""
	}
	for _, id := range r.order {
		settings := r.Settings(id)
		if settings.Disabled {
			continue
		}
		if settings.Selector.Matches(r.host, el) {
			return id
		}
	}
	return ""
}

// IsNavigable reports whether el may take focus as part of section id.
// With verifySelector set, el must also match the section's selector.
func (r *Registry) IsNavigable(el host.Element, id string, verifySelector bool) bool {
	if el == nil || id == "" {
		return false
	}
	if _, ok := r.sections[id]; !ok {
		return false
	}
	settings := r.Settings(id)
	if settings.Disabled {
		return false
	}
	if r.host.Rect(el).Empty() {
		return false
	}
	if _, disabled := r.host.Attr(el, host.AttrDisabled); disabled {
		return false
	}
	if verifySelector && !settings.Selector.Matches(r.host, el) {
		return false
	}
	if settings.NavigableFilter != nil && !settings.NavigableFilter(el, id) {
		return false
	}
	return true
}

// NavigableElements resolves a section's selector and keeps the elements
// that may take focus.
func (r *Registry) NavigableElements(id string) []host.Element {
	if _, ok := r.sections[id]; !ok {
		return nil
	}
	var out []host.Element
	for _, el := range r.Settings(id).Selector.Resolve(r.host) {
		if r.IsNavigable(el, id, false) {
			out = append(out, el)
		}
	}
	return out
}

// DefaultElement returns the section's default element if it is navigable.
func (r *Registry) DefaultElement(id string) host.Element {
	el := r.Settings(id).DefaultElement.First(r.host)
	if r.IsNavigable(el, id, true) {
		return el
	}
	return nil
}

// LastFocusedElement returns the section's last focused element if it is
// still navigable.
func (r *Registry) LastFocusedElement(id string) host.Element {
	s, ok := r.sections[id]
	if !ok {
		return nil
	}
	if r.IsNavigable(s.lastFocused, id, true) {
		return s.lastFocused
	}
	return nil
}

// FocusChanged records that el took focus. An empty sectionID is looked up.
func (r *Registry) FocusChanged(el host.Element, sectionID string) {
	if sectionID == "" {
		sectionID = r.SectionOf(el)
	}
	s, ok := r.sections[sectionID]
	if !ok {
		return
	}
	s.lastFocused = el
	r.lastID = sectionID
}

// ScrollBehavior returns the element's declared scroll behavior, falling
// back to the section's configured one.
func (r *Registry) ScrollBehavior(el host.Element, sectionID string) host.ScrollBehavior {
	if el != nil {
		if v, ok := r.host.Attr(el, host.AttrScroll); ok {
			if b := host.ScrollBehavior(v); b.Valid() {
				return b
			}
		}
	}
	return r.Settings(sectionID).ScrollIntoView
}

// MakeFocusable gives every element of a section (or of all sections when
// id is empty) a tabindex unless it already has one or matches the
// section's tabIndexIgnoreList.
func (r *Registry) MakeFocusable(id string) error {
	ids := r.order
	if id != "" {
		if _, ok := r.sections[id]; !ok {
			return naverrors.SectionNotFound(id)
		}
		ids = []string{id}
	}
	for _, sid := range ids {
		settings := r.Settings(sid)
		for _, el := range settings.Selector.Resolve(r.host) {
			if settings.TabIndexIgnoreList != "" && r.host.Matches(el, settings.TabIndexIgnoreList) {
				continue
			}
			if v, ok := r.host.Attr(el, host.AttrTabIndex); ok && v != "" {
				continue
			}
			r.host.SetAttr(el, host.AttrTabIndex, "-1")
		}
	}
	return nil
}

func (r *Registry) generateID() string {
	for {
		r.idPool++
		id := fmt.Sprintf("section-%d", r.idPool)
		if _, exists := r.sections[id]; !exists {
			return id
		}
	}
}
