package auth

import "sync"

// Notifier broadcasts auth state transitions to subscribers. Every
// sign-in, sign-out, and detected session expiry is delivered to each
// subscriber as the new principal, nil meaning "signed out".
//
// Delivery order relative to a concurrent CurrentPrincipal call is not
// guaranteed. Subscribers should treat each callback as the latest
// word and overwrite whatever they hold.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Principal)
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(*Principal))}
}

// Subscription is a handle for cancelling a subscription.
type Subscription struct {
	n  *Notifier
	id int
}

// Subscribe registers callback for future auth state changes. The
// callback is invoked synchronously from Notify, one subscriber at a
// time, with no lock held.
func (n *Notifier) Subscribe(callback func(*Principal)) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.subs[id] = callback
	return &Subscription{n: n, id: id}
}

// Notify delivers the new auth state to every subscriber.
func (n *Notifier) Notify(p *Principal) {
	n.mu.Lock()
	callbacks := make([]func(*Principal), 0, len(n.subs))
	for _, cb := range n.subs {
		callbacks = append(callbacks, cb)
	}
	n.mu.Unlock()

	for _, cb := range callbacks {
		cb(p)
	}
}

// Unsubscribe stops delivery to this subscription's callback. Safe to
// call any number of times.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.n == nil {
		return
	}
	s.n.mu.Lock()
	delete(s.n.subs, s.id)
	s.n.mu.Unlock()
}
