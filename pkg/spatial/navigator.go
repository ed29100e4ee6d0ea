package spatial

import (
	"github.com/odvcencio/spatialnav/pkg/events"
	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
	"github.com/odvcencio/spatialnav/pkg/section"
	"github.com/odvcencio/spatialnav/pkg/telemetry"
)

type leaveResult int

const (
	leaveNone leaveResult = iota
	leaveFocused
	leaveBlocked
)

// focusNext moves focus from current in dir and reports the result label.
func (e *Engine) focusNext(dir geometry.Direction, current host.Element, currentSectionID string) (bool, string) {
	if override, ok := e.host.Attr(current, host.AttrOverridePrefix+string(dir)); ok {
		sel := section.ParseSelector(override)
		if sel.Kind() == section.SelectorBlocked || !e.focusExtendedSelector(sel, dir) {
			e.navigateFailed(current, dir)
			return false, telemetry.ResultFailed
		}
		return true, telemetry.ResultMoved
	}

	settings := e.registry.Settings(currentSectionID)
	own := e.registry.NavigableElements(currentSectionID)

	var next host.Element
	var found bool
	switch settings.Restrict {
	case section.RestrictSelfOnly, section.RestrictSelfFirst:
		next, found = e.navigate(current, dir, without(own, current), settings, currentSectionID)
		if !found && settings.Restrict == section.RestrictSelfFirst {
			next, found = e.navigate(current, dir, without(e.allNavigable(), own...), settings, currentSectionID)
		}
	default:
		next, found = e.navigate(current, dir, without(e.allNavigable(), current), settings, currentSectionID)
	}

	if !found {
		if e.gotoLeaveFor(currentSectionID, dir) == leaveFocused {
			return true, telemetry.ResultMoved
		}
		e.navigateFailed(current, dir)
		return false, telemetry.ResultFailed
	}

	e.registry.Remember(currentSectionID, section.Previous{
		Target:      current,
		Destination: next,
		Reverse:     dir.Reverse(),
	})

	nextSectionID := e.registry.SectionOf(next)
	if nextSectionID != currentSectionID {
		switch e.gotoLeaveFor(currentSectionID, dir) {
		case leaveFocused:
			return true, telemetry.ResultMoved
		case leaveBlocked:
			e.navigateFailed(current, dir)
			return false, telemetry.ResultFailed
		}
		if el := e.enterElement(nextSectionID); el != nil {
			next = el
		}
	}

	if !e.focus.FocusElement(next, nextSectionID, dir) {
		return false, telemetry.ResultCancelled
	}
	return true, telemetry.ResultMoved
}

func (e *Engine) navigate(current host.Element, dir geometry.Direction, els []host.Element, settings section.Settings, sectionID string) (host.Element, bool) {
	if len(els) == 0 {
		return nil, false
	}
	candidates := make([]geometry.Candidate[host.Element], 0, len(els))
	for _, el := range els {
		candidates = append(candidates, geometry.Candidate[host.Element]{Element: el, Rect: e.host.Rect(el)})
	}
	opts := geometry.Options[host.Element]{
		StraightOnly:             settings.StraightOnly,
		StraightOverlapThreshold: settings.StraightOverlapThreshold,
		RememberSource:           settings.RememberSource,
	}
	if s, ok := e.registry.Get(sectionID); ok {
		opts.Previous = s.Previous()
	}
	target := geometry.Candidate[host.Element]{Element: current, Rect: e.host.Rect(current)}
	return geometry.Navigate(target, dir, candidates, opts)
}

// enterElement picks the element a section's enterTo rule substitutes for
// the geometric winner, or nil.
func (e *Engine) enterElement(sectionID string) host.Element {
	switch e.registry.Settings(sectionID).EnterTo {
	case section.EnterToLastFocused:
		if el := e.registry.LastFocusedElement(sectionID); el != nil {
			return el
		}
		return e.registry.DefaultElement(sectionID)
	case section.EnterToDefaultElement:
		return e.registry.DefaultElement(sectionID)
	}
	return nil
}

// gotoLeaveFor follows the section's leaveFor rule for dir.
func (e *Engine) gotoLeaveFor(sectionID string, dir geometry.Direction) leaveResult {
	sel, ok := e.registry.Settings(sectionID).LeaveFor[dir]
	if !ok || !sel.IsSet() {
		return leaveNone
	}
	if sel.Kind() == section.SelectorBlocked {
		return leaveBlocked
	}
	if e.focusExtendedSelector(sel, dir) {
		return leaveFocused
	}
	return leaveNone
}

// focusSection focuses the best element of sectionID, or of the default,
// last and remaining sections in that order when sectionID is empty.
func (e *Engine) focusSection(sectionID string) bool {
	var order []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		if _, ok := e.registry.Get(id); !ok || e.registry.Settings(id).Disabled {
			return
		}
		seen[id] = true
		order = append(order, id)
	}
	if sectionID != "" {
		add(sectionID)
	} else {
		add(e.registry.DefaultSection())
		add(e.registry.LastSection())
		for _, id := range e.registry.IDs() {
			add(id)
		}
	}

	for _, id := range order {
		var next host.Element
		if e.registry.Settings(id).EnterTo == section.EnterToLastFocused {
			next = firstElement(e.registry.LastFocusedElement(id), e.registry.DefaultElement(id))
		} else {
			next = firstElement(e.registry.DefaultElement(id), e.registry.LastFocusedElement(id))
		}
		if next == nil {
			if els := e.registry.NavigableElements(id); len(els) > 0 {
				next = els[0]
			}
		}
		if next != nil {
			return e.focus.FocusElement(next, id, "")
		}
	}
	return false
}

// focusExtendedSelector focuses whatever sel names: a section, the default
// section, or the first element of a query or list.
func (e *Engine) focusExtendedSelector(sel section.Selector, dir geometry.Direction) bool {
	switch sel.Kind() {
	case section.SelectorSectionDefault:
		return e.focusSection("")
	case section.SelectorSection:
		return e.focusSection(sel.SectionID())
	case section.SelectorQuery, section.SelectorElements:
		next := sel.First(e.host)
		if next == nil {
			return false
		}
		nextSectionID := e.registry.SectionOf(next)
		if !e.registry.IsNavigable(next, nextSectionID, false) {
			return false
		}
		return e.focus.FocusElement(next, nextSectionID, dir)
	}
	return false
}

func (e *Engine) navigateFailed(current host.Element, dir geometry.Direction) {
	e.emitter.Emit(current, events.NavigateFailed, events.Detail{Direction: dir}, false)
}

func (e *Engine) allNavigable() []host.Element {
	var all []host.Element
	for _, id := range e.registry.IDs() {
		all = append(all, e.registry.NavigableElements(id)...)
	}
	return all
}

func without(els []host.Element, drop ...host.Element) []host.Element {
	out := make([]host.Element, 0, len(els))
next:
	for _, el := range els {
		for _, d := range drop {
			if el == d {
				continue next
			}
		}
		out = append(out, el)
	}
	return out
}

func firstElement(els ...host.Element) host.Element {
	for _, el := range els {
		if el != nil {
			return el
		}
	}
	return nil
}
