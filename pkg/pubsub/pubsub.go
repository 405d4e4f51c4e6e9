package pubsub

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/pipenet/pkg/grid"
)

// ErrClosed is returned when subscribing to a bus that has been shut down.
var ErrClosed = errors.New("event bus is shut down")

// DefaultBuffer is the per-subscription channel capacity.
const DefaultBuffer = 100

// Topic names a stream of topology events.
type Topic string

const (
	// TopicSegments carries one event per segment whose presentation
	// needs refreshing.
	TopicSegments Topic = "segments"
	// TopicNetworks carries network lifecycle events.
	TopicNetworks Topic = "networks"
)

// Event is a single topology notification.
type Event struct {
	ID       uuid.UUID
	Topic    Topic
	Kind     string
	Segment  uint64
	Network  uint64
	Other    uint64
	Position grid.Point
	Anchored bool
	Size     int
	At       time.Time
}

// NewEvent stamps a fresh event with an ID and the current time.
func NewEvent(topic Topic, kind string) Event {
	return Event{
		ID:    uuid.New(),
		Topic: topic,
		Kind:  kind,
		At:    time.Now(),
	}
}

// Bus fans topology events out to subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event.
type Bus struct {
	subscribers map[Topic]map[*Subscription]struct{}
	mu          sync.RWMutex
	buffer      int
	dropped     atomic.Uint64
	shutdown    chan struct{}
	closeOnce   sync.Once
}

// Subscription receives the events of one or more topics.
type Subscription struct {
	topics    []Topic
	channel   chan Event
	bus       *Bus
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewBus creates a bus whose subscriptions buffer up to buffer events.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus{
		subscribers: make(map[Topic]map[*Subscription]struct{}),
		buffer:      buffer,
		shutdown:    make(chan struct{}),
	}
}

// Subscribe registers interest in the given topics until ctx is done or
// Unsubscribe is called.
func (b *Bus) Subscribe(ctx context.Context, topics ...Topic) (*Subscription, error) {
	b.mu.Lock()
	select {
	case <-b.shutdown:
		b.mu.Unlock()
		return nil, ErrClosed
	default:
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		topics:  topics,
		channel: make(chan Event, b.buffer),
		bus:     b,
		cancel:  cancel,
	}
	for _, topic := range topics {
		if b.subscribers[topic] == nil {
			b.subscribers[topic] = make(map[*Subscription]struct{})
		}
		b.subscribers[topic][sub] = struct{}{}
	}
	b.mu.Unlock()

	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-b.shutdown:
			// Shutdown closes the channel itself.
		}
	}()

	return sub, nil
}

// Publish delivers ev to every subscriber of ev.Topic. It reports how
// many received the event and how many missed it because their buffer was
// full.
func (b *Bus) Publish(ev Event) (delivered, dropped int) {
	// Sends happen under the read lock so no subscription channel can be
	// closed mid-send; closing takes the write lock.
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.shutdown:
		return 0, 0
	default:
	}

	for sub := range b.subscribers[ev.Topic] {
		select {
		case sub.channel <- ev:
			delivered++
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.dropped.Add(uint64(dropped))
	}
	return delivered, dropped
}

// Dropped returns how many deliveries were skipped because a subscriber
// buffer was full.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// SubscriberCount returns the number of subscribers for a topic
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// Shutdown closes every subscription. Later publishes are ignored.
func (b *Bus) Shutdown() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		close(b.shutdown)
		for topic, subs := range b.subscribers {
			for sub := range subs {
				sub.close()
			}
			delete(b.subscribers, topic)
		}
	})
}

// Events returns the subscription's event channel. It is closed when the
// subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.channel
}

// Unsubscribe removes the subscription and closes its channel. It is safe
// to call more than once.
func (s *Subscription) Unsubscribe() {
	s.cancel()

	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	for _, topic := range s.topics {
		if subs := s.bus.subscribers[topic]; subs != nil {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.bus.subscribers, topic)
			}
		}
	}
	s.close()
}

// close must be called with the bus write lock held.
func (s *Subscription) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
