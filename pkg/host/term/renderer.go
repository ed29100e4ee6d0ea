// Package term draws a dom.Document on a terminal and feeds terminal input
// back into it as host key and click events.
package term

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
	"github.com/odvcencio/spatialnav/pkg/host/dom"
)

// Styles controls how element boxes and the status line are drawn.
type Styles struct {
	Normal   tcell.Style
	Focused  tcell.Style
	Disabled tcell.Style
	Status   tcell.Style
}

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Normal:   tcell.StyleDefault,
		Focused:  tcell.StyleDefault.Reverse(true).Bold(true),
		Disabled: tcell.StyleDefault.Dim(true),
		Status:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
}

// Renderer paints every element with a data-rect as a box, one layout unit
// per cell unless a scale is set.
type Renderer struct {
	screen tcell.Screen
	doc    *dom.Document
	scaleX float64
	scaleY float64
	styles Styles
	status string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScale maps layout units to cells.
func WithScale(x, y float64) Option {
	return func(r *Renderer) {
		if x > 0 {
			r.scaleX = x
		}
		if y > 0 {
			r.scaleY = y
		}
	}
}

// WithStyles replaces the default palette.
func WithStyles(s Styles) Option {
	return func(r *Renderer) { r.styles = s }
}

// New creates a renderer over an initialized screen.
func New(screen tcell.Screen, doc *dom.Document, opts ...Option) *Renderer {
	r := &Renderer{
		screen: screen,
		doc:    doc,
		scaleX: 1,
		scaleY: 1,
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetStatus replaces the text on the bottom line. It shows on the next Draw.
func (r *Renderer) SetStatus(s string) {
	r.status = s
}

// Status returns the current status text.
func (r *Renderer) Status() string {
	return r.status
}

type box struct {
	x, y, w, h int
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

func (r *Renderer) boxOf(rect geometry.Rect) box {
	x0 := int(rect.Left * r.scaleX)
	y0 := int(rect.Top * r.scaleY)
	x1 := int(rect.Right * r.scaleX)
	y1 := int(rect.Bottom * r.scaleY)
	return box{x: x0, y: y0, w: max(x1-x0, 1), h: max(y1-y0, 1)}
}

// Draw repaints the whole screen.
func (r *Renderer) Draw() {
	r.screen.Clear()
	active := r.doc.Active()
	for _, el := range r.doc.Elements() {
		rect := r.doc.Rect(el)
		if rect.Empty() {
			continue
		}
		style := r.styles.Normal
		if _, off := r.doc.Attr(el, host.AttrDisabled); off {
			style = r.styles.Disabled
		}
		if el == active {
			style = r.styles.Focused
		}
		r.drawBox(r.boxOf(rect), r.doc.Label(el), style)
	}

	if r.status != "" {
		w, h := r.screen.Size()
		r.drawText(0, h-1, w, r.status, r.styles.Status)
	}
	r.screen.Show()
}

func (r *Renderer) drawBox(b box, label string, style tcell.Style) {
	for y := b.y; y < b.y+b.h; y++ {
		for x := b.x; x < b.x+b.w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	if b.w < 3 || b.h < 3 {
		r.drawText(b.x, b.y, b.w, label, style)
		return
	}

	right, bottom := b.x+b.w-1, b.y+b.h-1
	for x := b.x + 1; x < right; x++ {
		r.screen.SetContent(x, b.y, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := b.y + 1; y < bottom; y++ {
		r.screen.SetContent(b.x, y, tcell.RuneVLine, nil, style)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	r.screen.SetContent(b.x, b.y, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(right, b.y, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(b.x, bottom, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)

	r.drawText(b.x+1, b.y+(b.h-1)/2, b.w-2, label, style)
}

// drawText writes s from (x, y), truncated to width cells.
func (r *Renderer) drawText(x, y, width int, s string, style tcell.Style) {
	if width <= 0 {
		return
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	col := x
	for _, ch := range s {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}

// ElementAt returns the topmost element drawn at cell (x, y), or nil.
func (r *Renderer) ElementAt(x, y int) *html.Node {
	elements := r.doc.Elements()
	for i := len(elements) - 1; i >= 0; i-- {
		rect := r.doc.Rect(elements[i])
		if rect.Empty() {
			continue
		}
		if r.boxOf(rect).contains(x, y) {
			return elements[i]
		}
	}
	return nil
}

// KeyEvent maps a terminal key to a host key event. Arrows and hjkl move,
// Enter activates. Keys with no meaning to navigation report false.
func KeyEvent(ev *tcell.EventKey) (host.KeyEvent, bool) {
	var out host.KeyEvent
	switch ev.Key() {
	case tcell.KeyLeft:
		out.Direction = geometry.Left
	case tcell.KeyRight:
		out.Direction = geometry.Right
	case tcell.KeyUp:
		out.Direction = geometry.Up
	case tcell.KeyDown:
		out.Direction = geometry.Down
	case tcell.KeyEnter:
		out.Activate = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			out.Direction = geometry.Left
		case 'l':
			out.Direction = geometry.Right
		case 'k':
			out.Direction = geometry.Up
		case 'j':
			out.Direction = geometry.Down
		default:
			return host.KeyEvent{}, false
		}
	default:
		return host.KeyEvent{}, false
	}
	out.Modified = ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0
	return out, true
}

// HandleEvent applies one terminal event to the document and redraws.
// It reports true when the user asked to quit.
func (r *Renderer) HandleEvent(ev tcell.Event) (quit bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC:
			return true
		case e.Key() == tcell.KeyRune && e.Rune() == 'q':
			return true
		}
		if kev, ok := KeyEvent(e); ok {
			r.doc.PressKey(kev)
		}
	case *tcell.EventMouse:
		if e.Buttons()&tcell.Button1 == 0 {
			return false
		}
		x, y := e.Position()
		r.doc.Click(r.ElementAt(x, y))
	case *tcell.EventResize:
		r.screen.Sync()
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	r.Draw()
	return false
}

// Run draws once and then processes events until the user quits or ctx is
// done.
func (r *Renderer) Run(ctx context.Context) {
	stop := context.AfterFunc(ctx, func() {
		_ = r.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	r.Draw()
	for {
		ev := r.screen.PollEvent()
		if ev == nil || r.HandleEvent(ev) {
			return
		}
	}
}
