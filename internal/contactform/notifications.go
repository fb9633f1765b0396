package contactform

import (
	"sync"
	"time"

	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
)

// DefaultNotificationTTL is how long a notification stays queued without dismissal
const DefaultNotificationTTL = 5 * time.Second

// Timer is the part of *time.Timer the queue needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type queued struct {
	n     domain.Notification
	timer Timer
}

// NotificationQueue holds insertion-ordered notifications that each expire on their own timer.
// An entry is removed exactly once, by whichever of expiry or dismissal gets there first.
type NotificationQueue struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	afterFunc AfterFunc
	onPush    func(domain.Notification)
	entries   []queued
	closed    bool
}

func newNotificationQueue(ttl time.Duration, now func() time.Time, afterFunc AfterFunc, onPush func(domain.Notification)) *NotificationQueue {
	return &NotificationQueue{
		ttl:       ttl,
		now:       now,
		afterFunc: afterFunc,
		onPush:    onPush,
	}
}

// Push enqueues a notification and arms its expiry timer
func (q *NotificationQueue) Push(kind domain.NotificationKind, text string) domain.Notification {
	created := q.now()
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		CreatedAt: created,
		ExpiresAt: created.Add(q.ttl),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return n
	}
	id := n.ID
	timer := q.afterFunc(q.ttl, func() { q.remove(id) })
	q.entries = append(q.entries, queued{n: n, timer: timer})
	q.mu.Unlock()

	if q.onPush != nil {
		q.onPush(n)
	}
	return n
}

// Dismiss removes the notification with id and cancels its timer.
// It reports false when the entry already expired or never existed.
func (q *NotificationQueue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return false
	}
	q.entries[i].timer.Stop()
	q.entries = append(q.entries[:i], q.entries[i+1:]...)
	return true
}

// List returns the queued notifications in insertion order
func (q *NotificationQueue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]domain.Notification, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.n
	}
	return out
}

// Close stops every pending timer and drops the queue
func (q *NotificationQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		e.timer.Stop()
	}
	q.entries = nil
	q.closed = true
}

func (q *NotificationQueue) remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return false
	}
	q.entries = append(q.entries[:i], q.entries[i+1:]...)
	return true
}

func (q *NotificationQueue) indexOf(id string) int {
	for i, e := range q.entries {
		if e.n.ID == id {
			return i
		}
	}
	return -1
}
