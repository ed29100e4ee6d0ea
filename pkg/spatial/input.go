package spatial

import (
	"github.com/odvcencio/spatialnav/pkg/events"
	"github.com/odvcencio/spatialnav/pkg/host"
)

// input adapts the host's passive input stream to the engine.
type input struct {
	engine *Engine
}

var _ host.Listener = (*input)(nil)

func (in *input) KeyDown(ev host.KeyEvent) bool {
	e := in.engine
	if ev.Modified || e.focus.Paused() || e.registry.Len() == 0 {
		return false
	}

	if !ev.Direction.Valid() {
		if !ev.Activate {
			return false
		}
		current := e.host.ActiveElement()
		if current == nil || e.registry.SectionOf(current) == "" {
			return false
		}
		return !e.emitter.Emit(current, events.EnterDown, events.Detail{}, true)
	}

	current := e.host.ActiveElement()
	if current == nil {
		if last := e.registry.LastSection(); last != "" {
			current = e.registry.LastFocusedElement(last)
		}
		if current == nil {
			e.focusSection("")
			return true
		}
	}

	sectionID := e.registry.SectionOf(current)
	if sectionID == "" {
		return false
	}
	_, result := e.move(current, sectionID, ev.Direction, events.CauseKeydown)
	e.metrics.ObserveMove(ev.Direction, result)
	return true
}

func (in *input) KeyUp(ev host.KeyEvent) bool {
	e := in.engine
	if ev.Modified || !ev.Activate || e.focus.Paused() || e.registry.Len() == 0 {
		return false
	}
	current := e.host.ActiveElement()
	if current == nil || e.registry.SectionOf(current) == "" {
		return false
	}
	return !e.emitter.Emit(current, events.EnterUp, events.Detail{}, true)
}

func (in *input) FocusIn(el host.Element) {
	e := in.engine
	if e.registry.Len() == 0 || e.focus.Changing() {
		return
	}
	if sectionID := e.registry.SectionOf(el); sectionID != "" {
		e.focus.FocusIn(el, sectionID)
	}
}

func (in *input) FocusOut(el host.Element) {
	e := in.engine
	if e.focus.Paused() || e.registry.Len() == 0 || e.focus.Changing() {
		return
	}
	if sectionID := e.registry.SectionOf(el); sectionID != "" {
		e.focus.FocusOut(el, sectionID)
	}
}

// Click restores focus to the last section when the background is clicked
// while nothing holds focus.
func (in *input) Click(el host.Element) {
	e := in.engine
	if el != nil || e.registry.Len() == 0 || e.host.ActiveElement() != nil {
		return
	}
	last := e.registry.LastSection()
	if last == "" {
		return
	}
	if current := e.registry.LastFocusedElement(last); current != nil {
		e.focus.Silent(current, last)
	}
}
