package store

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// subKey identifies one live record set: user + car + record kind.
type subKey struct {
	userID uint
	carID  uint
	kind   Kind
}

// hub fans mutation notifications out to the live subscriptions of the
// affected record set. Each subscriber owns a goroutine that re-queries the
// snapshot and invokes its callback, so callbacks for one subscription are
// always serialized.
type hub struct {
	mu   sync.Mutex
	subs map[subKey]map[*subscriber]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[subKey]map[*subscriber]struct{})}
}

type subscriber struct {
	key     subKey
	onData  func([]Record)
	onError func(error)

	mu     sync.Mutex
	closed bool
	signal chan struct{}
	once   sync.Once
}

// Subscribe registers a live subscription for one user+car+kind. onData is
// invoked once with the current snapshot and again after every mutation of
// that record set. onError fires at most once; afterwards the subscription
// is dead and onData will not fire again. The returned function tears the
// subscription down and is safe to call more than once.
func (s *Store) Subscribe(userID, carID uint, kind Kind, onData func([]Record), onError func(error)) (func(), error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if carID == 0 {
		return nil, &MissingParameterError{Parameter: "car_id"}
	}
	if !ValidKind(kind) {
		return nil, &ValidationError{Field: "kind", Reason: "unknown record kind"}
	}
	if onData == nil {
		return nil, &MissingParameterError{Parameter: "onData"}
	}

	sub := &subscriber{
		key:     subKey{userID: userID, carID: carID, kind: kind},
		onData:  onData,
		onError: onError,
		signal:  make(chan struct{}, 1),
	}
	s.hub.register(sub)
	go sub.run(s)
	sub.poke()

	return func() { s.hub.stop(sub) }, nil
}

// run delivers snapshots until the subscription is torn down or a query
// fails. A failed query surfaces once through onError and kills the
// subscription; the consumer keeps whatever data it already rendered.
func (sub *subscriber) run(s *Store) {
	for range sub.signal {
		if sub.isClosed() {
			return
		}
		recs, err := s.List(sub.key.userID, sub.key.carID, sub.key.kind)
		if err != nil {
			s.hub.stopWithoutClose(sub)
			logrus.WithError(err).WithFields(logrus.Fields{
				"user_id": sub.key.userID,
				"car_id":  sub.key.carID,
				"kind":    sub.key.kind,
			}).Warn("subscription query failed, dropping subscriber")
			if sub.onError != nil {
				sub.onError(err)
			}
			return
		}
		if sub.isClosed() {
			return
		}
		sub.onData(recs)
	}
}

// poke coalesces: a snapshot refresh that is already pending covers any
// number of further mutations.
func (sub *subscriber) poke() {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	select {
	case sub.signal <- struct{}{}:
	default:
	}
}

func (sub *subscriber) isClosed() bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.closed
}

func (sub *subscriber) close() {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if !sub.closed {
		sub.closed = true
		close(sub.signal)
	}
}

func (h *hub) register(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.key]; !ok {
		h.subs[sub.key] = make(map[*subscriber]struct{})
	}
	h.subs[sub.key][sub] = struct{}{}
}

func (h *hub) unregister(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.key]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.key)
		}
	}
}

// stop tears a subscription down. Idempotent.
func (h *hub) stop(sub *subscriber) {
	sub.once.Do(func() {
		h.unregister(sub)
		sub.close()
	})
}

// stopWithoutClose unregisters a subscriber whose run loop is exiting on its
// own after an error; the loop still owns the channel.
func (h *hub) stopWithoutClose(sub *subscriber) {
	sub.once.Do(func() {
		h.unregister(sub)
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()
	})
}

// notify wakes every subscriber of the given record set.
func (h *hub) notify(key subKey) {
	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.subs[key]))
	for sub := range h.subs[key] {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.poke()
	}
}
