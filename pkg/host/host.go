// Package host defines the boundary between the navigation engine and the
// environment that owns the focusable elements: querying, measuring,
// focusing and the passive input stream.
package host

import "github.com/odvcencio/spatialnav/pkg/geometry"

// Element is an opaque handle to a host-owned focusable node.
// Handles must be comparable; pointer types are the usual choice.
type Element any

// ScrollBehavior controls how a newly focused element is brought into view.
type ScrollBehavior string

const (
	ScrollAuto   ScrollBehavior = "auto"
	ScrollSmooth ScrollBehavior = "smooth"
	ScrollNone   ScrollBehavior = "none"
)

// Valid reports whether b is a known behavior.
func (b ScrollBehavior) Valid() bool {
	switch b {
	case ScrollAuto, ScrollSmooth, ScrollNone:
		return true
	}
	return false
}

// Attribute names the engine reads from elements.
const (
	// AttrOverridePrefix + direction holds an element-level override selector.
	AttrOverridePrefix = "data-sn-"
	// AttrScroll overrides the scroll behavior for one element.
	AttrScroll   = "data-sn-scroll"
	AttrDisabled = "disabled"
	AttrTabIndex = "tabindex"
)

// Host is the environment the engine navigates.
// Every call is synchronous; results are never cached by the engine.
type Host interface {
	// Query returns the live elements matching a selector, in document order.
	Query(selector string) []Element

	// Matches reports whether el matches selector.
	Matches(el Element, selector string) bool

	// Rect measures el's current bounding box.
	Rect(el Element) geometry.Rect

	// Attr returns an attribute value and whether it is present.
	Attr(el Element, name string) (string, bool)

	// SetAttr sets an attribute value.
	SetAttr(el Element, name, value string)

	// Focus gives el input focus, scrolling it into view as requested.
	Focus(el Element, scroll ScrollBehavior)

	// Blur removes focus from el.
	Blur(el Element)

	// ActiveElement returns the focused element, or nil.
	ActiveElement() Element

	// Listen installs l as a passive input listener and returns a func that
	// removes it.
	Listen(l Listener) (stop func())
}

// KeyEvent is an input event already mapped from raw keys.
type KeyEvent struct {
	// Direction is set for the four navigation keys.
	Direction geometry.Direction
	// Activate is set for the Enter-equivalent key.
	Activate bool
	// Modified is set when alt, ctrl, meta or shift is held.
	Modified bool
}

// Listener receives the passive input stream from a host.
type Listener interface {
	// KeyDown returns true when the event was consumed.
	KeyDown(ev KeyEvent) bool
	// KeyUp returns true when the event was consumed.
	KeyUp(ev KeyEvent) bool
	// FocusIn is called after el received focus.
	FocusIn(el Element)
	// FocusOut is called after el lost focus.
	FocusOut(el Element)
	// Click is called for a pointer activation; el is nil for the background.
	Click(el Element)
}
