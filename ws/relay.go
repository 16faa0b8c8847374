package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tutorzindia/site/session"
)

// relayMessage is the payload published on the Redis channel.
type relayMessage struct {
	Kind       string `json:"kind"`
	UserID     string `json:"user_id,omitempty"`
	Event      string `json:"event,omitempty"`
	Collection string `json:"collection,omitempty"`
}

const (
	relaySessionChange = "session_change"
	relayContentUpdate = "content_update"
)

const (
	publishTimeout  = 2 * time.Second
	maxRelayBackoff = 30 * time.Second
)

// RedisRelay fans events out to every server instance through Redis
// pub/sub. Each instance runs Run, which hands the messages to its local hub,
// so a sign-out handled by one instance reaches tabs connected to another.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
	hub     *Hub

	// subscribed is true while Run holds a live subscription. Without one
	// this instance would never hear its own messages.
	subscribed atomic.Bool
}

// NewRedisRelay returns a relay publishing on channel.
func NewRedisRelay(rdb *redis.Client, channel string, hub *Hub) *RedisRelay {
	return &RedisRelay{rdb: rdb, channel: channel, hub: hub}
}

func (r *RedisRelay) PublishSessionChange(userID string, event session.Event) {
	r.publish(relayMessage{Kind: relaySessionChange, UserID: userID, Event: string(event)})
}

func (r *RedisRelay) PublishContentUpdate(collection string) {
	r.publish(relayMessage{Kind: relayContentUpdate, Collection: collection})
}

// publish delivers to the local hub itself when Redis is unreachable or
// when this instance has no live subscription, so its tabs still get the
// event.
func (r *RedisRelay) publish(msg relayMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[relay] failed to marshal %s: %v", msg.Kind, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		log.Printf("[relay] publish failed, delivering locally: %v", err)
		r.deliver(msg)
		return
	}
	if !r.subscribed.Load() {
		r.deliver(msg)
	}
}

// Run keeps a subscription to the channel and delivers every message to the
// local hub until ctx is cancelled. A lost subscription is retried with
// backoff.
func (r *RedisRelay) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := r.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("[relay] subscription lost, retrying in %s: %v", backoff, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxRelayBackoff)
	}
}

func (r *RedisRelay) listen(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	r.subscribed.Store(true)
	defer r.subscribed.Store(false)
	log.Printf("[relay] subscribed to %s", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return errors.New("relay subscription closed")
			}
			var msg relayMessage
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				log.Printf("[relay] invalid payload: %v", err)
				continue
			}
			r.deliver(msg)
		}
	}
}

func (r *RedisRelay) deliver(msg relayMessage) {
	switch msg.Kind {
	case relaySessionChange:
		r.hub.PublishSessionChange(msg.UserID, session.Event(msg.Event))
	case relayContentUpdate:
		r.hub.PublishContentUpdate(msg.Collection)
	default:
		log.Printf("[relay] unknown kind: %s", msg.Kind)
	}
}
