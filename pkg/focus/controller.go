// Package focus drives focus transitions through the cancelable lifecycle
// (willunfocus, unfocused, willfocus, focused) and reconciles focus changes
// the host makes on its own.
package focus

import (
	"github.com/odvcencio/spatialnav/pkg/events"
	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
	"github.com/odvcencio/spatialnav/pkg/logging"
	"github.com/odvcencio/spatialnav/pkg/telemetry"
)

//go:generate mockgen -package=focus -destination=mock_surface_test.go github.com/odvcencio/spatialnav/pkg/focus Surface

// Surface is the part of the host that moves focus.
type Surface interface {
	Focus(el host.Element, scroll host.ScrollBehavior)
	Blur(el host.Element)
	ActiveElement() host.Element
}

// Tracker keeps the per-section focus bookkeeping.
type Tracker interface {
	FocusChanged(el host.Element, sectionID string)
	ScrollBehavior(el host.Element, sectionID string) host.ScrollBehavior
}

// Controller owns the focus transition state: the reentrancy guard and
// the paused flag.
type Controller struct {
	surface Surface
	tracker Tracker
	emitter events.Emitter
	logger  *logging.Logger
	metrics *telemetry.Metrics
	history *History

	changing bool
	paused   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the controller's metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithHistorySize bounds the transition history.
func WithHistorySize(n int) Option {
	return func(c *Controller) { c.history = NewHistory(n) }
}

// NewController wires a controller to its collaborators.
func NewController(surface Surface, tracker Tracker, emitter events.Emitter, opts ...Option) *Controller {
	c := &Controller{
		surface: surface,
		tracker: tracker,
		emitter: emitter,
		logger:  logging.Nop(),
		history: NewHistory(DefaultHistorySize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pause makes every transition silent until Resume.
func (c *Controller) Pause() { c.paused = true }

// Resume re-enables lifecycle events.
func (c *Controller) Resume() { c.paused = false }

// Paused reports whether the controller is paused.
func (c *Controller) Paused() bool { return c.paused }

// Changing reports whether a transition is in progress.
func (c *Controller) Changing() bool { return c.changing }

// History returns the transition history.
func (c *Controller) History() *History { return c.history }

// Current returns the focused element, or nil.
func (c *Controller) Current() host.Element { return c.surface.ActiveElement() }

// FocusElement moves focus to el in sectionID. It returns false when el is
// nil or a listener cancelled the transition. Nested calls from inside a
// listener, and every call while paused, focus silently.
func (c *Controller) FocusElement(el host.Element, sectionID string, dir geometry.Direction) bool {
	if el == nil {
		return false
	}
	current := c.surface.ActiveElement()

	if c.changing {
		c.silent(current, el, sectionID, dir)
		return true
	}

	c.changing = true
	defer func() { c.changing = false }()

	if c.paused {
		c.silent(current, el, sectionID, dir)
		return true
	}

	if current != nil {
		detail := events.Detail{
			NextElement:   el,
			NextSectionID: sectionID,
			Direction:     dir,
		}
		if !c.emitter.Emit(current, events.WillUnfocus, detail, true) {
			c.record(current, el, sectionID, dir, ModeNormal, OutcomeCancelled)
			return false
		}
		c.surface.Blur(current)
		c.emitter.Emit(current, events.Unfocused, detail, false)
	}

	detail := events.Detail{
		PreviousElement: current,
		SectionID:       sectionID,
		Direction:       dir,
	}
	if !c.emitter.Emit(el, events.WillFocus, detail, true) {
		if current != nil {
			c.surface.Focus(current, host.ScrollNone)
		}
		c.record(current, el, sectionID, dir, ModeNormal, OutcomeCancelled)
		return false
	}

	c.surface.Focus(el, c.tracker.ScrollBehavior(el, sectionID))
	c.emitter.Emit(el, events.Focused, detail, false)
	c.tracker.FocusChanged(el, sectionID)
	c.record(current, el, sectionID, dir, ModeNormal, OutcomeFocused)
	return true
}

// Silent moves focus to el without any lifecycle events.
func (c *Controller) Silent(el host.Element, sectionID string) bool {
	if el == nil {
		return false
	}
	current := c.surface.ActiveElement()
	if c.changing {
		c.silent(current, el, sectionID, "")
		return true
	}
	c.changing = true
	defer func() { c.changing = false }()
	c.silent(current, el, sectionID, "")
	return true
}

func (c *Controller) silent(current, el host.Element, sectionID string, dir geometry.Direction) {
	if current != nil && current != el {
		c.surface.Blur(current)
	}
	c.surface.Focus(el, c.tracker.ScrollBehavior(el, sectionID))
	c.tracker.FocusChanged(el, sectionID)
	c.record(current, el, sectionID, dir, ModeSilent, OutcomeFocused)
}

// FocusIn reconciles focus the host gave el on its own. A willfocus veto
// blurs el again.
func (c *Controller) FocusIn(el host.Element, sectionID string) {
	if el == nil || c.changing {
		return
	}
	if c.paused {
		c.tracker.FocusChanged(el, sectionID)
		c.record(nil, el, sectionID, "", ModeSilent, OutcomeFocused)
		return
	}

	detail := events.Detail{SectionID: sectionID, Native: true}
	if !c.emitter.Emit(el, events.WillFocus, detail, true) {
		c.changing = true
		c.surface.Blur(el)
		c.changing = false
		c.record(nil, el, sectionID, "", ModeNative, OutcomeCancelled)
		return
	}
	c.emitter.Emit(el, events.Focused, detail, false)
	c.tracker.FocusChanged(el, sectionID)
	c.record(nil, el, sectionID, "", ModeNative, OutcomeFocused)
}

// FocusOut reconciles focus the host took from el on its own. A
// willunfocus veto puts focus back on el.
func (c *Controller) FocusOut(el host.Element, sectionID string) {
	if el == nil || c.changing || c.paused {
		return
	}

	detail := events.Detail{Native: true}
	if !c.emitter.Emit(el, events.WillUnfocus, detail, true) {
		c.changing = true
		c.surface.Focus(el, host.ScrollNone)
		c.changing = false
		c.record(el, el, sectionID, "", ModeNative, OutcomeCancelled)
		return
	}
	c.emitter.Emit(el, events.Unfocused, detail, false)
	c.record(el, nil, sectionID, "", ModeNative, OutcomeBlurred)
}

func (c *Controller) record(from, to host.Element, sectionID string, dir geometry.Direction, mode Mode, outcome Outcome) {
	c.history.Add(Transition{
		From:      from,
		To:        to,
		SectionID: sectionID,
		Direction: dir,
		Mode:      mode,
		Outcome:   outcome,
	})
	c.metrics.ObserveTransition(string(mode), string(outcome))
	c.logger.LogTransition(string(mode), string(outcome), sectionID, dir)
}
