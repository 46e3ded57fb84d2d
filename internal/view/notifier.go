package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level of a transient notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notice one transient, auto-dismissing notification. Write failures
// are surfaced this way so the originating form can stay open.
type Notice struct {
	ID      string
	Level   Level
	Message string
	Expires time.Time
}

// Notifier holds the active notices and drops them after their TTL.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	notices []Notice
}

// NewNotifier creates a notifier with the given auto-dismiss TTL.
func NewNotifier(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl, now: time.Now}
}

// Push adds a notice and returns it.
func (n *Notifier) Push(level Level, message string) Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	notice := Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		Expires: n.now().Add(n.ttl),
	}
	n.notices = append(n.notices, notice)
	return notice
}

// Active returns the not-yet-expired notices and prunes the rest.
func (n *Notifier) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	kept := n.notices[:0]
	for _, notice := range n.notices {
		if notice.Expires.After(now) {
			kept = append(kept, notice)
		}
	}
	n.notices = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes a notice before its TTL elapses.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, notice := range n.notices {
		if notice.ID == id {
			n.notices = append(n.notices[:i], n.notices[i+1:]...)
			return
		}
	}
}
