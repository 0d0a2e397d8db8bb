package services

import (
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"sync"
	"time"

	"github.com/bluele/gcache"
)

const (
	defaultDisplaySessions = 10_000
	defaultDisplayTTL      = time.Hour
)

// Ticket identifies one submission within a display session.
type Ticket struct {
	Session string
	Seq     uint64
}

// Display is what a session currently shows.
// Itinerary is nil after a failed plan; Error carries the message.
type Display struct {
	Ticket    Ticket
	Itinerary *domain.Itinerary
	Geometry  *domain.GeometryBundle
	Error     string
	AppliedAt time.Time
}

type sessionState struct {
	latest  uint64
	display *Display
}

// DisplaySessions applies planning results last-submitted-wins: a result is
// shown only when its ticket is still the newest one of its session, so a
// slow earlier request can never overwrite a newer one.
// Idle sessions expire from an LRU.
type DisplaySessions struct {
	mu       sync.Mutex
	seq      uint64
	sessions gcache.Cache
}

func NewDisplaySessions(size int, ttl time.Duration) *DisplaySessions {
	if size <= 0 {
		size = defaultDisplaySessions
	}
	if ttl <= 0 {
		ttl = defaultDisplayTTL
	}
	return &DisplaySessions{
		sessions: gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

func (d *DisplaySessions) state(session string) *sessionState {
	v, err := d.sessions.Get(session)
	if err == nil {
		return v.(*sessionState)
	}
	st := &sessionState{}
	_ = d.sessions.Set(session, st)
	return st
}

// Submit registers a new request for session and returns its ticket.
// Submitting clears what the session displays and refreshes its expiry.
// Sequence numbers are global so a ticket issued before a session expired
// never matches a later one.
func (d *DisplaySessions) Submit(session string) Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	st := d.state(session)
	st.latest = d.seq
	st.display = nil
	_ = d.sessions.Set(session, st)
	return Ticket{Session: session, Seq: st.latest}
}

// Apply stores result as the session display when t is still the latest
// ticket. It reports whether the result was applied.
func (d *DisplaySessions) Apply(t Ticket, result Display) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.state(t.Session)
	if t.Seq != st.latest {
		return false
	}
	result.Ticket = t
	if result.AppliedAt.IsZero() {
		result.AppliedAt = time.Now()
	}
	st.display = &result
	return true
}

var ErrNoDisplay = errors.New("nothing displayed")

// Current returns the applied display of session.
func (d *DisplaySessions) Current(session string) (Display, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.sessions.Get(session)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return Display{}, fmt.Errorf("current display %q: %w", session, ErrNoDisplay)
	}
	if err != nil {
		return Display{}, fmt.Errorf("current display %q: %w", session, err)
	}
	st := v.(*sessionState)
	if st.display == nil {
		return Display{}, fmt.Errorf("current display %q: %w", session, ErrNoDisplay)
	}
	return *st.display, nil
}
