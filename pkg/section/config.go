package section

import (
	"fmt"

	naverrors "github.com/odvcencio/spatialnav/pkg/errors"
	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
)

// EnterTo picks which element receives focus when a section is entered.
type EnterTo string

const (
	EnterToNone           EnterTo = ""
	EnterToLastFocused    EnterTo = "last-focused"
	EnterToDefaultElement EnterTo = "default-element"
)

// Restrict controls whether navigation may leave a section.
type Restrict string

const (
	RestrictSelfFirst Restrict = "self-first"
	RestrictSelfOnly  Restrict = "self-only"
	RestrictNone      Restrict = "none"
)

// NavigableFilter vetoes elements; returning false hides el from navigation.
type NavigableFilter func(el host.Element, sectionID string) bool

// LeaveFor maps a direction to where focus goes when leaving the section.
type LeaveFor map[geometry.Direction]Selector

// Default configuration values
const (
	DefaultStraightOverlapThreshold = 0.5
	DefaultTabIndexIgnoreList       = "a, input, select, textarea, button, iframe, [contentEditable=true]"
)

// Config is a partial configuration. Unset fields (nil pointers, nil maps,
// unset selectors, nil funcs) fall back to the global config and then to
// the defaults.
type Config struct {
	Selector                 Selector             `yaml:"selector"`
	StraightOnly             *bool                `yaml:"straight_only"`
	StraightOverlapThreshold *float64             `yaml:"straight_overlap_threshold"`
	RememberSource           *bool                `yaml:"remember_source"`
	Disabled                 *bool                `yaml:"disabled"`
	DefaultElement           Selector             `yaml:"default_element"`
	EnterTo                  *EnterTo             `yaml:"enter_to"`
	LeaveFor                 LeaveFor             `yaml:"leave_for"`
	Restrict                 *Restrict            `yaml:"restrict"`
	TabIndexIgnoreList       *string              `yaml:"tab_index_ignore_list"`
	NavigableFilter          NavigableFilter      `yaml:"-"`
	ScrollIntoView           *host.ScrollBehavior `yaml:"scroll_into_view"`
}

// Settings is a fully resolved configuration.
type Settings struct {
	Selector                 Selector
	StraightOnly             bool
	StraightOverlapThreshold float64
	RememberSource           bool
	Disabled                 bool
	DefaultElement           Selector
	EnterTo                  EnterTo
	LeaveFor                 LeaveFor
	Restrict                 Restrict
	TabIndexIgnoreList       string
	NavigableFilter          NavigableFilter
	ScrollIntoView           host.ScrollBehavior
}

// Bool returns a pointer to v, for filling Config fields.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Enter returns a pointer to v.
func Enter(v EnterTo) *EnterTo { return &v }

// Restriction returns a pointer to v.
func Restriction(v Restrict) *Restrict { return &v }

// Scroll returns a pointer to v.
func Scroll(v host.ScrollBehavior) *host.ScrollBehavior { return &v }

// DefaultConfig returns the built-in global configuration with every field set.
func DefaultConfig() Config {
	return Config{
		StraightOnly:             Bool(false),
		StraightOverlapThreshold: Float(DefaultStraightOverlapThreshold),
		RememberSource:           Bool(false),
		Disabled:                 Bool(false),
		EnterTo:                  Enter(EnterToNone),
		Restrict:                 Restriction(RestrictSelfFirst),
		TabIndexIgnoreList:       String(DefaultTabIndexIgnoreList),
		ScrollIntoView:           Scroll(host.ScrollAuto),
	}
}

// Merge overlays the set fields of override onto base.
func Merge(base, override Config) Config {
	if override.Selector.IsSet() {
		base.Selector = override.Selector
	}
	if override.StraightOnly != nil {
		base.StraightOnly = Bool(*override.StraightOnly)
	}
	if override.StraightOverlapThreshold != nil {
		base.StraightOverlapThreshold = Float(*override.StraightOverlapThreshold)
	}
	if override.RememberSource != nil {
		base.RememberSource = Bool(*override.RememberSource)
	}
	if override.Disabled != nil {
		base.Disabled = Bool(*override.Disabled)
	}
	if override.DefaultElement.IsSet() {
		base.DefaultElement = override.DefaultElement
	}
	if override.EnterTo != nil {
		base.EnterTo = Enter(*override.EnterTo)
	}
	if override.LeaveFor != nil {
		base.LeaveFor = override.LeaveFor.clone()
	}
	if override.Restrict != nil {
		base.Restrict = Restriction(*override.Restrict)
	}
	if override.TabIndexIgnoreList != nil {
		base.TabIndexIgnoreList = String(*override.TabIndexIgnoreList)
	}
	if override.NavigableFilter != nil {
		base.NavigableFilter = override.NavigableFilter
	}
	if override.ScrollIntoView != nil {
		base.ScrollIntoView = Scroll(*override.ScrollIntoView)
	}
	return base
}

// Resolve flattens own over global over the defaults.
func Resolve(global, own Config) Settings {
	c := Merge(Merge(DefaultConfig(), global), own)
	return Settings{
		Selector:                 c.Selector,
		StraightOnly:             *c.StraightOnly,
		StraightOverlapThreshold: *c.StraightOverlapThreshold,
		RememberSource:           *c.RememberSource,
		Disabled:                 *c.Disabled,
		DefaultElement:           c.DefaultElement,
		EnterTo:                  *c.EnterTo,
		LeaveFor:                 c.LeaveFor,
		Restrict:                 *c.Restrict,
		TabIndexIgnoreList:       *c.TabIndexIgnoreList,
		NavigableFilter:          c.NavigableFilter,
		ScrollIntoView:           *c.ScrollIntoView,
	}
}

// Validate checks enumerated and ranged fields.
func (c Config) Validate() error {
	if c.StraightOverlapThreshold != nil {
		if v := *c.StraightOverlapThreshold; v < 0 || v > 1 {
			return invalid("straight_overlap_threshold", fmt.Sprintf("%v is outside [0, 1]", v))
		}
	}
	if c.EnterTo != nil {
		switch *c.EnterTo {
		case EnterToNone, EnterToLastFocused, EnterToDefaultElement:
		default:
			return invalid("enter_to", fmt.Sprintf("unknown value %q", *c.EnterTo))
		}
	}
	if c.Restrict != nil {
		switch *c.Restrict {
		case RestrictSelfFirst, RestrictSelfOnly, RestrictNone:
		default:
			return invalid("restrict", fmt.Sprintf("unknown value %q", *c.Restrict))
		}
	}
	if c.ScrollIntoView != nil && !c.ScrollIntoView.Valid() {
		return invalid("scroll_into_view", fmt.Sprintf("unknown value %q", *c.ScrollIntoView))
	}
	for dir := range c.LeaveFor {
		if !dir.Valid() {
			return invalid("leave_for", fmt.Sprintf("unknown direction %q", dir))
		}
	}
	return nil
}

func invalid(field, reason string) error {
	return naverrors.New(naverrors.ErrCodeConfigInvalid, reason).WithContext("field", field)
}

func (l LeaveFor) clone() LeaveFor {
	out := make(LeaveFor, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
