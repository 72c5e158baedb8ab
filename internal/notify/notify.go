// Package notify is the toast notification service. It replaces ambient
// "current toast" state with an explicit per-user queue: Show enqueues,
// watchers stream toasts to the client, and entries auto-dismiss after a
// fixed TTL.
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultTTL is how long a toast stays visible before auto-dismissal.
const DefaultTTL = 3 * time.Second

type Toast struct {
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Notifier struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	queues   map[uint][]Toast
	watchers map[uint]map[chan Toast]struct{}
}

func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		ttl:      ttl,
		now:      time.Now,
		queues:   make(map[uint][]Toast),
		watchers: make(map[uint]map[chan Toast]struct{}),
	}
}

// Show enqueues a toast for one user. Fire-and-forget: slow or absent
// watchers never block the caller.
func (n *Notifier) Show(userID uint, message string, severity Severity) {
	now := n.now()
	toast := Toast{
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.queues[userID] = append(n.pruneLocked(userID, now), toast)
	for ch := range n.watchers[userID] {
		select {
		case ch <- toast:
		default:
			logrus.WithField("user_id", userID).Debug("toast watcher full, dropping")
		}
	}
}

// Active returns the not-yet-expired toasts for a user, oldest first.
func (n *Notifier) Active(userID uint) []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	live := n.pruneLocked(userID, n.now())
	n.queues[userID] = live
	out := make([]Toast, len(live))
	copy(out, live)
	return out
}

// Watch streams future toasts for a user. The second return value stops
// watching and is safe to call more than once.
func (n *Notifier) Watch(userID uint) (<-chan Toast, func()) {
	ch := make(chan Toast, 16)

	n.mu.Lock()
	if _, ok := n.watchers[userID]; !ok {
		n.watchers[userID] = make(map[chan Toast]struct{})
	}
	n.watchers[userID][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.watchers[userID], ch)
			if len(n.watchers[userID]) == 0 {
				delete(n.watchers, userID)
			}
			close(ch)
			n.mu.Unlock()
		})
	}
	return ch, cancel
}

func (n *Notifier) pruneLocked(userID uint, now time.Time) []Toast {
	var live []Toast
	for _, t := range n.queues[userID] {
		if t.ExpiresAt.After(now) {
			live = append(live, t)
		}
	}
	return live
}
