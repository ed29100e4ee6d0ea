// Package spatial is the directional focus navigation engine. An Engine
// owns the section registry and the focus controller for one host and is
// the only thing callers need to talk to.
package spatial

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	naverrors "github.com/odvcencio/spatialnav/pkg/errors"
	"github.com/odvcencio/spatialnav/pkg/events"
	"github.com/odvcencio/spatialnav/pkg/focus"
	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
	"github.com/odvcencio/spatialnav/pkg/logging"
	"github.com/odvcencio/spatialnav/pkg/section"
	"github.com/odvcencio/spatialnav/pkg/telemetry"
)

// Engine navigates the elements of one host. Create one per host and pass
// it to whatever needs to move focus. It is not safe for concurrent use;
// like the host, it expects every call on the input goroutine.
type Engine struct {
	host       host.Host
	registry   *section.Registry
	focus      *focus.Controller
	dispatcher *events.Dispatcher
	emitter    events.Emitter

	logger      *logging.Logger
	metrics     *telemetry.Metrics
	tracer      trace.Tracer
	historySize int

	stop func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithDispatcher delivers events through d instead of a private dispatcher.
func WithDispatcher(d *events.Dispatcher) Option {
	return func(e *Engine) {
		if d != nil {
			e.dispatcher = d
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records navigation metrics on m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer traces Move and Focus calls on t.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithHistorySize bounds the focus transition history.
func WithHistorySize(n int) Option {
	return func(e *Engine) { e.historySize = n }
}

// New creates an engine for h. Call Init to start listening for input.
func New(h host.Host, opts ...Option) *Engine {
	e := &Engine{
		host:        h,
		registry:    section.NewRegistry(h),
		logger:      logging.Nop(),
		historySize: focus.DefaultHistorySize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dispatcher == nil {
		e.dispatcher = events.NewDispatcher()
	}
	e.emitter = e.dispatcher
	if e.tracer == nil {
		e.tracer = telemetry.Tracer()
	}
	e.focus = focus.NewController(h, e.registry, e.emitter,
		focus.WithLogger(e.logger),
		focus.WithMetrics(e.metrics),
		focus.WithHistorySize(e.historySize),
	)
	return e
}

// Init installs the input listener on the host. Calling it twice is a no-op.
func (e *Engine) Init() {
	if e.stop != nil {
		return
	}
	e.stop = e.host.Listen(&input{engine: e})
	e.logger.Debug("engine initialized")
}

// Uninit removes the input listener, clears every section and restarts
// generated id numbering.
func (e *Engine) Uninit() {
	if e.stop != nil {
		e.stop()
		e.stop = nil
	}
	e.Clear()
	e.registry.ResetIDs()
	e.logger.Debug("engine uninitialized")
}

// Clear removes every section.
func (e *Engine) Clear() {
	e.registry.Clear()
	e.metrics.SetSections(0)
	e.logger.LogSectionChange("clear", "")
}

// Reset forgets the focus memory of one section, or of all when id is empty.
func (e *Engine) Reset(id string) {
	e.registry.Reset(id)
}

// Set merges cfg into section id, or into the global config when id is empty.
func (e *Engine) Set(id string, cfg section.Config) error {
	if err := e.registry.Set(id, cfg); err != nil {
		return err
	}
	e.logger.LogSectionChange("set", id)
	return nil
}

// Add registers a section and returns its id, generating one when id is
// empty.
func (e *Engine) Add(id string, cfg section.Config) (string, error) {
	id, err := e.registry.Add(id, cfg)
	if err != nil {
		return "", err
	}
	e.metrics.SetSections(e.registry.Len())
	e.logger.LogSectionChange("add", id)
	return id, nil
}

// Remove deletes a section.
func (e *Engine) Remove(id string) (bool, error) {
	ok, err := e.registry.Remove(id)
	if err != nil {
		return false, err
	}
	e.metrics.SetSections(e.registry.Len())
	e.logger.LogSectionChange("remove", id)
	return ok, nil
}

// Disable stops a section from taking part in navigation.
func (e *Engine) Disable(id string) bool {
	return e.registry.Disable(id)
}

// Enable reverses Disable.
func (e *Engine) Enable(id string) bool {
	return e.registry.Enable(id)
}

// Pause makes focus changes silent until Resume.
func (e *Engine) Pause() { e.focus.Pause() }

// Resume re-enables lifecycle events.
func (e *Engine) Resume() { e.focus.Resume() }

// Paused reports whether the engine is paused.
func (e *Engine) Paused() bool { return e.focus.Paused() }

// Focus is FocusContext without a caller context.
func (e *Engine) Focus(sel section.Selector, silent bool) bool {
	return e.FocusContext(context.Background(), sel, silent)
}

// FocusContext focuses what sel names. An unset selector focuses the
// default or last section. A query naming an existing section id focuses
// that section. With silent set, no lifecycle events fire.
func (e *Engine) FocusContext(ctx context.Context, sel section.Selector, silent bool) bool {
	_, span := telemetry.StartSpan(ctx, e.tracer, "spatialnav.Focus")
	defer span.End()

	autoPause := silent && !e.focus.Paused()
	if autoPause {
		e.focus.Pause()
		defer e.focus.Resume()
	}

	var ok bool
	switch sel.Kind() {
	case section.SelectorUnset:
		ok = e.focusSection("")
	case section.SelectorQuery:
		if _, exists := e.registry.Get(sel.Query()); exists {
			span.SetAttributes(telemetry.SectionAttr(sel.Query()))
			ok = e.focusSection(sel.Query())
		} else {
			ok = e.focusExtendedSelector(sel, "")
		}
	case section.SelectorElements:
		el := sel.First(e.host)
		sectionID := e.registry.SectionOf(el)
		if e.registry.IsNavigable(el, sectionID, false) {
			ok = e.focus.FocusElement(el, sectionID, "")
		}
	default:
		ok = e.focusExtendedSelector(sel, "")
	}
	span.SetAttributes(telemetry.ResultAttr(ok))
	return ok
}

// Move is MoveContext without a caller context.
func (e *Engine) Move(dir geometry.Direction, from section.Selector) bool {
	return e.MoveContext(context.Background(), dir, from)
}

// MoveContext moves focus in dir, starting at the first element from names
// or at the focused element when from is unset. It returns false when
// there is no start element, the start belongs to no section, a willmove
// listener cancels, or navigation fails.
func (e *Engine) MoveContext(ctx context.Context, dir geometry.Direction, from section.Selector) bool {
	_, span := telemetry.StartSpan(ctx, e.tracer, "spatialnav.Move", telemetry.DirectionAttr(dir))
	defer span.End()

	if !dir.Valid() {
		span.SetAttributes(telemetry.ResultAttr(false))
		return false
	}

	var current host.Element
	if from.IsSet() {
		current = from.First(e.host)
	} else {
		current = e.host.ActiveElement()
	}
	sectionID := e.registry.SectionOf(current)
	span.SetAttributes(telemetry.SectionAttr(sectionID))

	ok, result := e.move(current, sectionID, dir, events.CauseAPI)
	span.SetAttributes(telemetry.ResultAttr(ok))
	e.metrics.ObserveMove(dir, result)
	return ok
}

func (e *Engine) move(current host.Element, sectionID string, dir geometry.Direction, cause events.Cause) (bool, string) {
	if current == nil || sectionID == "" {
		e.logger.LogMove(dir, sectionID, telemetry.ResultSkipped)
		return false, telemetry.ResultSkipped
	}
	detail := events.Detail{Direction: dir, SectionID: sectionID, Cause: cause}
	if !e.emitter.Emit(current, events.WillMove, detail, true) {
		e.logger.LogMove(dir, sectionID, telemetry.ResultCancelled)
		return false, telemetry.ResultCancelled
	}
	ok, result := e.focusNext(dir, current, sectionID)
	e.logger.LogMove(dir, sectionID, result)
	return ok, result
}

// MakeFocusable gives the elements of section id, or of every section when
// id is empty, a tabindex so the host can focus them.
func (e *Engine) MakeFocusable(id string) error {
	return e.registry.MakeFocusable(id)
}

// SetDefaultSection chooses the section focused when nothing else applies.
func (e *Engine) SetDefaultSection(id string) error {
	return e.registry.SetDefaultSection(id)
}

// Apply merges a layout's global config and adds its sections.
func (e *Engine) Apply(l *section.Layout) error {
	if l == nil {
		return naverrors.New(naverrors.ErrCodeInvalidInput, "layout is nil")
	}
	if err := l.Validate(); err != nil {
		return err
	}
	if err := e.Set("", l.Global); err != nil {
		return err
	}
	for _, item := range l.Sections {
		if _, err := e.Add(item.ID, item.Config); err != nil {
			return err
		}
	}
	if l.DefaultSection != "" {
		return e.SetDefaultSection(l.DefaultSection)
	}
	return nil
}

// Events returns the dispatcher lifecycle events are delivered on.
func (e *Engine) Events() *events.Dispatcher { return e.dispatcher }

// Registry returns the section registry.
func (e *Engine) Registry() *section.Registry { return e.registry }

// Current returns the focused element, or nil.
func (e *Engine) Current() host.Element { return e.host.ActiveElement() }

// History returns recent focus transitions, oldest first.
func (e *Engine) History() []focus.Transition { return e.focus.History().All() }
