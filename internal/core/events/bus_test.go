package events_test

import (
	"sync"
	"testing"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliveryOrder(t *testing.T) {
	bus := events.NewBus()
	var got []string

	bus.Subscribe(domain.TopicWaterUpdated, func(e events.Event) { got = append(got, "first") })
	bus.Subscribe(events.Wildcard, func(e events.Event) { got = append(got, "wildcard") })
	bus.Subscribe(domain.TopicWaterUpdated, func(e events.Event) { got = append(got, "second") })

	n := bus.Publish(domain.TopicWaterUpdated, domain.WaterUpdated{UserID: "u1", NewValue: 3})

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"first", "wildcard", "second"}, got)
}

func TestBus_SynchronousDelivery(t *testing.T) {
	bus := events.NewBus()
	delivered := false

	bus.Subscribe(domain.TopicFriendAdded, func(e events.Event) {
		payload, ok := e.Payload.(domain.FriendEvent)
		require.True(t, ok)
		assert.Equal(t, "f1", payload.FriendID)
		delivered = true
	})

	bus.Publish(domain.TopicFriendAdded, domain.FriendEvent{UserID: "u1", FriendID: "f1"})

	assert.True(t, delivered, "handler must have run before Publish returned")
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus()
	calls := 0

	sub := bus.Subscribe(domain.TopicWorkoutCompleted, func(e events.Event) { calls++ })
	bus.Publish(domain.TopicWorkoutCompleted, nil)

	sub.Unsubscribe()
	sub.Unsubscribe()
	bus.Publish(domain.TopicWorkoutCompleted, nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.SubscriberCount(domain.TopicWorkoutCompleted))
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	bus := events.NewBus()
	calls := 0
	bus.Subscribe(domain.TopicFriendRemoved, func(e events.Event) { calls++ })

	n := bus.Publish(domain.TopicFriendAdded, nil)

	assert.Equal(t, 0, n)
	assert.Equal(t, 0, calls)
}

func TestBus_HandlerMayUnsubscribeDuringDelivery(t *testing.T) {
	bus := events.NewBus()
	var got []string

	var sub *events.Subscription
	sub = bus.Subscribe(domain.TopicGoalReached, func(e events.Event) {
		got = append(got, "once")
		sub.Unsubscribe()
	})
	bus.Subscribe(domain.TopicGoalReached, func(e events.Event) { got = append(got, "always") })

	bus.Publish(domain.TopicGoalReached, nil)
	bus.Publish(domain.TopicGoalReached, nil)

	assert.Equal(t, []string{"once", "always", "always"}, got)
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := events.NewBus()
	reached := false

	bus.Subscribe(domain.TopicStreakUpdated, func(e events.Event) { panic("boom") })
	bus.Subscribe(domain.TopicStreakUpdated, func(e events.Event) { reached = true })

	assert.NotPanics(t, func() { bus.Publish(domain.TopicStreakUpdated, nil) })
	assert.True(t, reached)
}

func TestBus_ConcurrentPublishAndSubscribe(t *testing.T) {
	bus := events.NewBus()
	var mu sync.Mutex
	count := 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe(domain.TopicActivityUpdated, func(e events.Event) {
				mu.Lock()
				count++
				mu.Unlock()
			})
			_ = sub
		}()
		go func() {
			defer wg.Done()
			bus.Publish(domain.TopicActivityUpdated, nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, bus.SubscriberCount(domain.TopicActivityUpdated))
	assert.Equal(t, 20, bus.Publish(domain.TopicActivityUpdated, nil))
}
