package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher pushes order events through Redis pub/sub so that every
// instance behind a load balancer sees them. Payloads travel as JSON.
type RedisPublisher struct {
	Client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{Client: client}
}

func (p *RedisPublisher) Publish(topic string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.Client.Publish(context.Background(), topic, b).Err()
}

// Relay subscribes to the order topics on Redis and republishes each message
// into the local hub, so websocket clients connected to this instance receive
// events published anywhere. Blocks until ctx is cancelled or the
// subscription breaks.
func Relay(ctx context.Context, client *redis.Client, hub *Hub) error {
	sub := client.Subscribe(ctx, TopicPendingOrders, TopicCookedOrders, TopicOrderUpdates)
	defer sub.Close()

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}
		payload, err := decodePayload(msg.Channel, []byte(msg.Payload))
		if err != nil {
			log.Printf("event relay: drop malformed %s payload: %v", msg.Channel, err)
			continue
		}
		hub.Publish(msg.Channel, payload)
	}
}

func decodePayload(topic string, raw []byte) (any, error) {
	switch topic {
	case TopicPendingOrders:
		var p PendingOrder
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TopicCookedOrders:
		var p CookedOrder
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TopicOrderUpdates:
		var p OrderUpdate
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown topic %q", topic)
}
