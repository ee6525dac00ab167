// Package realtime carries notification change events from writers to the
// open websocket sessions of their owners.
package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
)

// ChangeType is the kind of row change a ChangeEvent describes
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent is one notification row change
type ChangeEvent struct {
	Type         ChangeType          `json:"type"`
	Notification models.Notification `json:"notification"`
}

// UserID is the owner the event is routed to
func (e ChangeEvent) UserID() uuid.UUID {
	return e.Notification.UserID
}

// Feed is the list of notifications held for one session, newest first.
// The unread count is always derived from the held items.
type Feed struct {
	mu    sync.Mutex
	items []models.Notification
	limit int

	// events applied while a load is in flight, replayed when it lands
	held    bool
	pending []ChangeEvent
}

// NewFeed returns an empty feed holding at most limit items (0 = unbounded)
func NewFeed(limit int) *Feed {
	return &Feed{limit: limit}
}

// Hold queues events passed to Apply until the next Load or Resume. Call it
// before reading the list that Load will receive.
func (f *Feed) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.held = true
}

// Load replaces the held items, then replays events queued since Hold.
// items must be newest first.
func (f *Feed) Load(items []models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]models.Notification(nil), items...)
	f.trim()
	f.replay()
}

// Resume replays queued events onto the current items, for a load that failed
func (f *Feed) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replay()
}

func (f *Feed) replay() {
	pending := f.pending
	f.held, f.pending = false, nil
	for _, ev := range pending {
		f.apply(ev)
	}
}

func (f *Feed) trim() {
	if f.limit > 0 && len(f.items) > f.limit {
		f.items = f.items[:f.limit]
	}
}

func (f *Feed) indexOf(id uuid.UUID) int {
	for i := range f.items {
		if f.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Apply reduces one change event into the feed and reports whether the held
// state changed. While a load is in flight the event is queued and Apply
// reports false.
func (f *Feed) Apply(ev ChangeEvent) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.held {
		f.pending = append(f.pending, ev)
		return false
	}
	return f.apply(ev)
}

func (f *Feed) apply(ev ChangeEvent) bool {
	idx := f.indexOf(ev.Notification.ID)
	switch ev.Type {
	case ChangeInsert:
		if idx >= 0 {
			return f.replace(idx, ev.Notification)
		}
		f.items = append([]models.Notification{ev.Notification}, f.items...)
		f.trim()
		return true
	case ChangeUpdate:
		if idx < 0 {
			return false
		}
		return f.replace(idx, ev.Notification)
	case ChangeDelete:
		if idx < 0 {
			return false
		}
		f.items = append(f.items[:idx], f.items[idx+1:]...)
		return true
	}
	return false
}

// replace stores n at idx and reports whether it differs from what was held
func (f *Feed) replace(idx int, n models.Notification) bool {
	if sameNotification(f.items[idx], n) {
		return false
	}
	f.items[idx] = n
	return true
}

// sameNotification compares field by field; timestamps that crossed a
// broker lose their monotonic reading, so == would not do.
func sameNotification(a, b models.Notification) bool {
	return a.ID == b.ID &&
		a.UserID == b.UserID &&
		a.Title == b.Title &&
		a.Message == b.Message &&
		a.Type == b.Type &&
		a.Link == b.Link &&
		a.IsRead == b.IsRead &&
		a.CreatedAt.Equal(b.CreatedAt)
}

// MarkRead marks one held item read and reports whether it was unread.
func (f *Feed) MarkRead(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.indexOf(id)
	if idx < 0 || f.items[idx].IsRead {
		return false
	}
	f.items[idx].IsRead = true
	return true
}

// MarkAllRead marks every held item read and returns the ids it changed.
func (f *Feed) MarkAllRead() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	var changed []uuid.UUID
	for i := range f.items {
		if !f.items[i].IsRead {
			f.items[i].IsRead = true
			changed = append(changed, f.items[i].ID)
		}
	}
	return changed
}

// Items returns a copy of the held items, newest first
func (f *Feed) Items() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification{}, f.items...)
}

// UnreadCount counts held items with IsRead false
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return unread(f.items)
}

// Snapshot returns the items and their unread count under one lock
func (f *Feed) Snapshot() ([]models.Notification, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification{}, f.items...), unread(f.items)
}

func unread(items []models.Notification) int {
	n := 0
	for i := range items {
		if !items[i].IsRead {
			n++
		}
	}
	return n
}

// Get returns the held item with the given id
func (f *Feed) Get(id uuid.UUID) (models.Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if idx := f.indexOf(id); idx >= 0 {
		return f.items[idx], true
	}
	return models.Notification{}, false
}
