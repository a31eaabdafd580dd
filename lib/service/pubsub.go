package service

import (
	"sync"
	"sync/atomic"

	"github.com/getAlby/royaltyhub.go/common"
	"github.com/getAlby/royaltyhub.go/db/models"
	"github.com/google/uuid"
)

const eventBufferSize = 100

// Pubsub fans hub events out to in-process subscribers, keyed by event type.
// Subscribers own their channels: Unsubscribe never closes them.
type Pubsub struct {
	mu      sync.RWMutex
	subs    map[string]map[string]chan models.Event
	dropped atomic.Uint64
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan models.Event)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan models.Event) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan models.Event)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = ch
	return subId
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	delete(ps.subs[topic], id)
}

// Publish never blocks: a subscriber that is not keeping up misses the event.
func (ps *Pubsub) Publish(topic string, msg models.Event) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, ch := range ps.subs[topic] {
		select {
		case ch <- msg:
		default:
			ps.dropped.Add(1)
		}
	}
}

// Dropped returns how many events were not delivered to slow subscribers.
func (ps *Pubsub) Dropped() uint64 {
	return ps.dropped.Load()
}

// SubscribeEvents subscribes one buffered channel to every event type.
func (svc *RoyaltyHubService) SubscribeEvents() (chan models.Event, func(), error) {
	events := make(chan models.Event, eventBufferSize)
	subIds := map[string]string{}
	for _, eventType := range common.EventTypes {
		subIds[eventType] = svc.EventPubSub.Subscribe(eventType, events)
	}
	unsubscribe := func() {
		for eventType, subId := range subIds {
			svc.EventPubSub.Unsubscribe(subId, eventType)
		}
	}
	return events, unsubscribe, nil
}
