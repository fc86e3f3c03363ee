package store

import (
	"sync"

	"github.com/google/uuid"
)

// notifier wakes live streams in this process after a local write. Writes
// from other processes are picked up by the file watcher or the poll ticker.
type notifier struct {
	mu   sync.RWMutex
	subs map[string]chan struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]chan struct{})}
}

// subscribe returns a wake channel holding at most one pending signal, and
// the id to unsubscribe with.
func (n *notifier) subscribe() (string, <-chan struct{}) {
	id := uuid.NewString()
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.subs[id] = ch
	n.mu.Unlock()
	return id, ch
}

func (n *notifier) unsubscribe(id string) {
	n.mu.Lock()
	delete(n.subs, id)
	n.mu.Unlock()
}

// publish signals every subscriber without blocking; a subscriber that has
// not consumed the previous signal keeps just one.
func (n *notifier) publish() {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs {
		wake(ch)
	}
}

func (n *notifier) count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

func wake(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
