package feed

import (
	"context"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"forum-service/internal/models"
	"forum-service/internal/observability"
)

// subscriberBuffer bounds how far a slow feed consumer may fall behind
// before events are dropped for it.
const subscriberBuffer = 8

// Subscriber receives new posts on C until unsubscribed.
type Subscriber struct {
	C chan models.Post
}

// Broker fans newly inserted posts out to live stream subscribers. There is
// no replay: a subscriber sees only inserts from subscription time forward.
type Broker struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a new feed subscriber.
func (b *Broker) Subscribe() *Subscriber {
	sub := &Subscriber{C: make(chan models.Post, subscriberBuffer)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	observability.IncSSESubscribers()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broker) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	_, ok := b.subs[sub]
	if ok {
		delete(b.subs, sub)
		close(sub.C)
	}
	b.mu.Unlock()
	if ok {
		observability.DecSSESubscribers()
	}
}

// Publish delivers a post to every subscriber. A subscriber with a full
// buffer loses the event; it never blocks the watcher or other subscribers.
func (b *Broker) Publish(post models.Post) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		select {
		case sub.C <- post:
		default:
		}
	}
}

// Watch opens a change stream over post insertions and publishes each full
// document until ctx is canceled. The stream cursor is closed on return.
func (b *Broker) Watch(ctx context.Context, posts *mongo.Collection) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "operationType", Value: "insert"}}}},
	}
	stream, err := posts.Watch(ctx, pipeline)
	if err != nil {
		return err
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var event struct {
			FullDocument models.Post `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			log.Printf("change stream decode failed: %v", err)
			continue
		}
		b.Publish(event.FullDocument)
	}
	return stream.Err()
}
