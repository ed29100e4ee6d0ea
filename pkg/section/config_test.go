package section

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	naverrors "github.com/odvcencio/spatialnav/pkg/errors"
	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
)

func TestResolveDefaults(t *testing.T) {
	s := Resolve(Config{}, Config{})

	assert.False(t, s.Selector.IsSet())
	assert.False(t, s.StraightOnly)
	assert.Equal(t, DefaultStraightOverlapThreshold, s.StraightOverlapThreshold)
	assert.False(t, s.RememberSource)
	assert.False(t, s.Disabled)
	assert.Equal(t, EnterToNone, s.EnterTo)
	assert.Nil(t, s.LeaveFor)
	assert.Equal(t, RestrictSelfFirst, s.Restrict)
	assert.Equal(t, DefaultTabIndexIgnoreList, s.TabIndexIgnoreList)
	assert.Nil(t, s.NavigableFilter)
	assert.Equal(t, host.ScrollAuto, s.ScrollIntoView)
}

func TestResolveLayering(t *testing.T) {
	global := Config{
		StraightOnly: Bool(true),
		Restrict:     Restriction(RestrictNone),
		LeaveFor:     LeaveFor{geometry.Up: Blocked()},
	}
	own := Config{
		Restrict: Restriction(RestrictSelfOnly),
		EnterTo:  Enter(EnterToLastFocused),
	}

	s := Resolve(global, own)
	assert.True(t, s.StraightOnly, "inherited from global")
	assert.Equal(t, RestrictSelfOnly, s.Restrict, "section overrides global")
	assert.Equal(t, EnterToLastFocused, s.EnterTo)
	assert.Equal(t, SelectorBlocked, s.LeaveFor[geometry.Up].Kind())
}

func TestMergeCopiesSetFieldsOnly(t *testing.T) {
	base := Config{
		Selector:     ByQuery(".a"),
		StraightOnly: Bool(true),
	}
	merged := Merge(base, Config{RememberSource: Bool(true)})

	assert.Equal(t, ".a", merged.Selector.Query())
	assert.True(t, *merged.StraightOnly)
	assert.True(t, *merged.RememberSource)
	assert.Nil(t, merged.Restrict)
}

func TestMergeDoesNotAlias(t *testing.T) {
	override := Config{
		StraightOnly: Bool(true),
		LeaveFor:     LeaveFor{geometry.Left: ByQuery("#x")},
	}
	merged := Merge(Config{}, override)

	*override.StraightOnly = false
	override.LeaveFor[geometry.Left] = Blocked()

	assert.True(t, *merged.StraightOnly)
	assert.Equal(t, SelectorQuery, merged.LeaveFor[geometry.Left].Kind())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"threshold too high", Config{StraightOverlapThreshold: Float(1.5)}, "straight_overlap_threshold"},
		{"threshold negative", Config{StraightOverlapThreshold: Float(-0.1)}, "straight_overlap_threshold"},
		{"enter to", Config{EnterTo: Enter("first")}, "enter_to"},
		{"restrict", Config{Restrict: Restriction("all")}, "restrict"},
		{"scroll", Config{ScrollIntoView: Scroll("instant")}, "scroll_into_view"},
		{"leave for", Config{LeaveFor: LeaveFor{"north": Blocked()}}, "leave_for"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, naverrors.IsCode(err, naverrors.ErrCodeConfigInvalid))

			var navErr *naverrors.Error
			require.ErrorAs(t, err, &navErr)
			assert.Equal(t, tt.field, navErr.Context["field"])
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{StraightOverlapThreshold: Float(1)}.Validate())
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		kind    SelectorKind
		section string
		query   string
	}{
		{"", SelectorBlocked, "", ""},
		{"@", SelectorSectionDefault, "", ""},
		{"@menu", SelectorSection, "menu", ""},
		{".item", SelectorQuery, "", ".item"},
	}
	for _, tt := range tests {
		sel := ParseSelector(tt.in)
		assert.Equal(t, tt.kind, sel.Kind(), tt.in)
		assert.Equal(t, tt.section, sel.SectionID(), tt.in)
		assert.Equal(t, tt.query, sel.Query(), tt.in)
		assert.True(t, sel.IsSet())
	}

	assert.False(t, Selector{}.IsSet())
	assert.Equal(t, "<unset>", Selector{}.String())
	assert.Equal(t, "@menu", BySection("menu").String())
	assert.Equal(t, `""`, Blocked().String())
}

func TestElementsSelector(t *testing.T) {
	a, b := &struct{ n int }{1}, &struct{ n int }{2}
	sel := ByElements(a)

	assert.True(t, sel.Matches(nil, a))
	assert.False(t, sel.Matches(nil, b))
	assert.False(t, sel.Matches(nil, nil))
	assert.Equal(t, []host.Element{a}, sel.Resolve(nil))
	assert.Equal(t, host.Element(a), sel.First(nil))
	assert.Nil(t, BySection("x").First(nil))
}

const layoutYAML = `
global:
  straight_overlap_threshold: 0.3
  scroll_into_view: smooth
  unknown_key: ignored
default_section: grid
sections:
  - id: grid
    selector: ".grid .item"
    remember_source: true
    enter_to: last-focused
    leave_for:
      up: "@menu"
      left: ""
  - id: menu
    selector: ".menu a"
    restrict: self-only
    default_element: "#home"
  - selector: ".footer a"
`

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout([]byte(layoutYAML))
	require.NoError(t, err)

	assert.Equal(t, 0.3, *layout.Global.StraightOverlapThreshold)
	assert.Equal(t, host.ScrollSmooth, *layout.Global.ScrollIntoView)
	assert.Equal(t, "grid", layout.DefaultSection)
	require.Len(t, layout.Sections, 3)

	grid := layout.Sections[0]
	assert.Equal(t, "grid", grid.ID)
	assert.Equal(t, ".grid .item", grid.Selector.Query())
	assert.True(t, *grid.RememberSource)
	assert.Equal(t, EnterToLastFocused, *grid.EnterTo)
	assert.Equal(t, SelectorSection, grid.LeaveFor[geometry.Up].Kind())
	assert.Equal(t, "menu", grid.LeaveFor[geometry.Up].SectionID())
	assert.Equal(t, SelectorBlocked, grid.LeaveFor[geometry.Left].Kind())

	menu := layout.Sections[1]
	assert.Equal(t, RestrictSelfOnly, *menu.Restrict)
	assert.Equal(t, "#home", menu.DefaultElement.Query())

	assert.Empty(t, layout.Sections[2].ID)
}

func TestParseLayoutErrors(t *testing.T) {
	_, err := ParseLayout([]byte("sections: [unclosed"))
	assert.True(t, naverrors.IsCode(err, naverrors.ErrCodeConfigParse))

	_, err = ParseLayout([]byte("sections:\n  - id: a\n    selector: [1, 2]\n"))
	assert.True(t, naverrors.IsCode(err, naverrors.ErrCodeConfigParse))

	_, err = ParseLayout([]byte("sections:\n  - id: a\n  - id: a\n"))
	assert.True(t, naverrors.IsCode(err, naverrors.ErrCodeSectionExists))

	_, err = ParseLayout([]byte("sections:\n  - id: a\n    restrict: everywhere\n"))
	require.True(t, naverrors.IsCode(err, naverrors.ErrCodeConfigInvalid))
	var navErr *naverrors.Error
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, "a", navErr.Context["section"])

	_, err = ParseLayout([]byte("default_section: ghost\nsections:\n  - id: a\n"))
	assert.True(t, naverrors.IsCode(err, naverrors.ErrCodeSectionNotFound))
}

func TestLoadLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(layoutYAML), 0o644))

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Len(t, layout.Sections, 3)

	_, err = LoadLayout(filepath.Join(dir, "missing.yaml"))
	assert.True(t, naverrors.IsCode(err, naverrors.ErrCodeConfigLoad))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("global: ["), 0o644))
	_, err = LoadLayout(bad)
	require.True(t, naverrors.IsCode(err, naverrors.ErrCodeConfigParse))
	var navErr *naverrors.Error
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, bad, navErr.Context["path"])
}
