package focus

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
)

// DefaultHistorySize is the number of transitions kept by default.
const DefaultHistorySize = 32

// Mode is how a transition was carried out.
type Mode string

const (
	// ModeNormal fires the full cancelable lifecycle.
	ModeNormal Mode = "normal"
	// ModeSilent moves focus without lifecycle events.
	ModeSilent Mode = "silent"
	// ModeNative reconciles a focus change the host made on its own.
	ModeNative Mode = "native"
)

// Outcome is how a transition ended.
type Outcome string

const (
	OutcomeFocused   Outcome = "focused"
	OutcomeBlurred   Outcome = "blurred"
	OutcomeCancelled Outcome = "cancelled"
)

// Transition is one recorded focus change.
type Transition struct {
	ID        ulid.ULID
	From      host.Element
	To        host.Element
	SectionID string
	Direction geometry.Direction
	Mode      Mode
	Outcome   Outcome
	At        time.Time
}

// History is a bounded ring of recent transitions, oldest first.
type History struct {
	mu     sync.RWMutex
	buffer []Transition
	head   int
	size   int
}

// NewHistory creates a history holding up to capacity transitions.
// A non-positive capacity disables recording.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{buffer: make([]Transition, capacity)}
}

// Add records t, stamping its id and time when unset.
func (h *History) Add(t Transition) {
	if h == nil || len(h.buffer) == 0 {
		return
	}
	if t.At.IsZero() {
		t.At = time.Now()
	}
	if t.ID == (ulid.ULID{}) {
		t.ID = ulid.MustNew(ulid.Timestamp(t.At), ulid.DefaultEntropy())
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer[h.head] = t
	h.head = (h.head + 1) % len(h.buffer)
	if h.size < len(h.buffer) {
		h.size++
	}
}

// All returns the recorded transitions in chronological order.
func (h *History) All() []Transition {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size == 0 {
		return nil
	}
	out := make([]Transition, h.size)
	start := (h.head - h.size + len(h.buffer)) % len(h.buffer)
	for i := range out {
		out[i] = h.buffer[(start+i)%len(h.buffer)]
	}
	return out
}

// Last returns the most recent transition.
func (h *History) Last() (Transition, bool) {
	if h == nil {
		return Transition{}, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size == 0 {
		return Transition{}, false
	}
	return h.buffer[(h.head-1+len(h.buffer))%len(h.buffer)], true
}

// Clear drops every recorded transition.
func (h *History) Clear() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.buffer)
	h.head = 0
	h.size = 0
}
