package events

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Wildcard subscribers receive every topic, interleaved with topic subscribers
// in subscription order.
const Wildcard = "*"

type Event struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

type Handler func(Event)

type subscriber struct {
	id uint64
	fn Handler
}

// Bus is an in-process publish/subscribe registry. Delivery is synchronous on
// the publisher's goroutine; nothing is queued or persisted.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]subscriber
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]subscriber),
	}
}

type Subscription struct {
	bus   *Bus
	topic string
	id    uint64
	once  sync.Once
}

func (b *Bus) Subscribe(topic string, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriber{id: id, fn: fn})

	return &Subscription{bus: b, topic: topic, id: id}
}

// Unsubscribe is idempotent.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.topic, s.id)
	})
}

func (s *Subscription) Topic() string {
	return s.topic
}

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[topic]
	for i, sub := range list {
		if sub.id == id {
			next := make([]subscriber, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(b.subs, topic)
			} else {
				b.subs[topic] = next
			}
			return
		}
	}
}

// Publish delivers the event to every current subscriber and returns how many
// handlers ran. The handler list is snapshotted under the lock and invoked
// outside it, so handlers may subscribe, unsubscribe or publish.
func (b *Bus) Publish(topic string, payload any) int {
	b.mu.RLock()
	targets := make([]subscriber, 0, len(b.subs[topic])+len(b.subs[Wildcard]))
	targets = append(targets, b.subs[topic]...)
	if topic != Wildcard {
		targets = append(targets, b.subs[Wildcard]...)
	}
	b.mu.RUnlock()

	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].id < targets[j].id
	})

	evt := Event{Topic: topic, Payload: payload}
	for _, sub := range targets {
		deliver(sub.fn, evt)
	}
	return len(targets)
}

func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// A panicking handler is logged and skipped; the remaining handlers still run.
func deliver(fn Handler, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("topic", evt.Topic).Interface("panic", r).Msg("event handler panicked")
		}
	}()
	fn(evt)
}
