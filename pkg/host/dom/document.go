// Package dom implements host.Host over a parsed HTML document.
//
// Elements are *html.Node handles. Queries use CSS selectors through
// goquery, and element geometry comes from a data-rect="x,y,w,h" attribute
// since there is no layout engine behind the document.
package dom

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	naverrors "github.com/odvcencio/spatialnav/pkg/errors"
	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
)

// AttrRect holds an element's bounding box as "x,y,w,h".
const AttrRect = "data-rect"

// Document is a host.Host backed by an HTML tree.
// It is not safe for concurrent use; drive it from one goroutine.
type Document struct {
	doc       *goquery.Document
	active    *html.Node
	scrolls   map[*html.Node]host.ScrollBehavior
	listeners []listenerSlot
	nextSlot  int
}

type listenerSlot struct {
	id int
	l  host.Listener
}

var _ host.Host = (*Document)(nil)

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.ErrCodeConfigParse, "failed to parse document")
	}
	return &Document{
		doc:     doc,
		scrolls: make(map[*html.Node]host.ScrollBehavior),
	}, nil
}

// ParseString reads an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load reads an HTML document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, naverrors.Wrap(err, naverrors.ErrCodeConfigLoad, "failed to open document").
			WithContext("path", path)
	}
	defer f.Close()
	return Parse(f)
}

// ByID returns the element with the given id attribute, or nil.
func (d *Document) ByID(id string) *html.Node {
	for _, n := range d.doc.Find("[id]").Nodes {
		if v, _ := d.Attr(n, "id"); v == id {
			return n
		}
	}
	return nil
}

// Elements returns every element carrying geometry, in document order.
func (d *Document) Elements() []*html.Node {
	return d.doc.Find("[" + AttrRect + "]").Nodes
}

// Label returns the element's trimmed text, falling back to its id.
func (d *Document) Label(el host.Element) string {
	n, ok := el.(*html.Node)
	if !ok || n == nil {
		return ""
	}
	if text := strings.Join(strings.Fields(goquery.NewDocumentFromNode(n).Text()), " "); text != "" {
		return text
	}
	id, _ := d.Attr(n, "id")
	return id
}

// Query implements host.Host. An invalid selector matches nothing.
func (d *Document) Query(selector string) []host.Element {
	nodes := d.doc.Find(selector).Nodes
	out := make([]host.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n)
	}
	return out
}

// Matches implements host.Host.
func (d *Document) Matches(el host.Element, selector string) bool {
	n, ok := el.(*html.Node)
	if !ok || n == nil {
		return false
	}
	return d.doc.FindNodes(n).Is(selector)
}

// Rect implements host.Host. Elements without a parseable data-rect have
// an empty rect.
func (d *Document) Rect(el host.Element) geometry.Rect {
	v, ok := d.Attr(el, AttrRect)
	if !ok {
		return geometry.Rect{}
	}
	r, err := ParseRect(v)
	if err != nil {
		return geometry.Rect{}
	}
	return r
}

// ParseRect parses "x,y,w,h". Commas and whitespace both separate fields.
func ParseRect(s string) (geometry.Rect, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 4 {
		return geometry.Rect{}, naverrors.New(naverrors.ErrCodeInvalidInput, "rect needs four numbers").
			WithContext("rect", s)
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Rect{}, naverrors.Wrap(err, naverrors.ErrCodeInvalidInput, "bad rect number").
				WithContext("rect", s)
		}
		v[i] = n
	}
	return geometry.NewRect(v[0], v[1], v[2], v[3]), nil
}

// Attr implements host.Host.
func (d *Document) Attr(el host.Element, name string) (string, bool) {
	n, ok := el.(*html.Node)
	if !ok || n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr implements host.Host.
func (d *Document) SetAttr(el host.Element, name, value string) {
	n, ok := el.(*html.Node)
	if !ok || n == nil {
		return
	}
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: strings.ToLower(name), Val: value})
}

// RemoveAttr deletes an attribute.
func (d *Document) RemoveAttr(el host.Element, name string) {
	n, ok := el.(*html.Node)
	if !ok || n == nil {
		return
	}
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if !strings.EqualFold(a.Key, name) {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

// Focus implements host.Host. Listeners see focusout for the previous
// element before focusin for el. A focusout listener that puts focus back
// somewhere wins over el.
func (d *Document) Focus(el host.Element, scroll host.ScrollBehavior) {
	n, ok := el.(*html.Node)
	if !ok || n == nil || n == d.active {
		return
	}
	if prev := d.active; prev != nil {
		d.active = nil
		d.each(func(l host.Listener) { l.FocusOut(prev) })
		if d.active != nil {
			return
		}
	}
	d.active = n
	d.scrolls[n] = scroll
	d.each(func(l host.Listener) { l.FocusIn(n) })
}

// Blur implements host.Host.
func (d *Document) Blur(el host.Element) {
	n, ok := el.(*html.Node)
	if !ok || n == nil || n != d.active {
		return
	}
	d.active = nil
	d.each(func(l host.Listener) { l.FocusOut(n) })
}

// ActiveElement implements host.Host.
func (d *Document) ActiveElement() host.Element {
	if d.active == nil {
		return nil
	}
	return d.active
}

// Active returns the focused node, or nil.
func (d *Document) Active() *html.Node { return d.active }

// ScrollFor returns the scroll behavior el was last focused with.
func (d *Document) ScrollFor(el *html.Node) host.ScrollBehavior {
	return d.scrolls[el]
}

// Listen implements host.Host.
func (d *Document) Listen(l host.Listener) (stop func()) {
	d.nextSlot++
	id := d.nextSlot
	d.listeners = append(d.listeners, listenerSlot{id: id, l: l})
	return func() {
		for i, slot := range d.listeners {
			if slot.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// KeyDown delivers a key press and reports whether a listener consumed it.
func (d *Document) KeyDown(ev host.KeyEvent) bool {
	consumed := false
	d.each(func(l host.Listener) {
		if l.KeyDown(ev) {
			consumed = true
		}
	})
	return consumed
}

// KeyUp delivers a key release and reports whether a listener consumed it.
func (d *Document) KeyUp(ev host.KeyEvent) bool {
	consumed := false
	d.each(func(l host.Listener) {
		if l.KeyUp(ev) {
			consumed = true
		}
	})
	return consumed
}

// PressKey delivers a key press followed by its release.
func (d *Document) PressKey(ev host.KeyEvent) bool {
	consumed := d.KeyDown(ev)
	d.KeyUp(ev)
	return consumed
}

// Click simulates a pointer activation. Clicking an element focuses it
// first; a nil element is a click on the background, which blurs.
func (d *Document) Click(el *html.Node) {
	var target host.Element
	if el != nil {
		d.Focus(el, host.ScrollNone)
		target = el
	} else if d.active != nil {
		d.Blur(d.active)
	}
	d.each(func(l host.Listener) { l.Click(target) })
}

func (d *Document) each(fn func(host.Listener)) {
	snapshot := append([]listenerSlot(nil), d.listeners...)
	for _, slot := range snapshot {
		fn(slot.l)
	}
}
