package auth

import (
	"sync"

	"github.com/dmitrijs2005/fortress/internal/models"
)

// broadcaster fans committed states out to subscribers. publish never
// blocks: when a subscriber's buffer is full its oldest pending state is
// dropped, so it always ends up with the newest one and never sees states
// out of order.
type broadcaster struct {
	mu   sync.Mutex
	subs map[uint64]chan models.AuthState
	next uint64
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[uint64]chan models.AuthState)}
}

// subscribe registers a channel of the given buffer size that already holds
// initial.
func (b *broadcaster) subscribe(size int, initial models.AuthState) (<-chan models.AuthState, func()) {
	if size < 1 {
		size = 1
	}
	ch := make(chan models.AuthState, size)
	ch <- initial.Clone()

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (b *broadcaster) publish(st models.AuthState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		send(ch, st.Clone())
	}
}

// send is only called with b.mu held, so nothing else writes to ch and a
// single drop always makes room.
func send(ch chan models.AuthState, st models.AuthState) {
	select {
	case ch <- st:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- st:
	default:
	}
}

func (b *broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
