package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoomLiveness mirrors the registry's live rooms into Redis as best-effort
// liveness markers, so dashboards (or a future multi-instance router) can
// see which PINs are active. Keys: SET room:pin:{PIN} "1"
type RoomLiveness struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRoomLiveness(client *redis.Client, ttl time.Duration) *RoomLiveness {
	return &RoomLiveness{client: client, ttl: ttl}
}

func (l *RoomLiveness) RoomOpened(pin string) {
	_ = l.client.Set(context.Background(), l.key(pin), "1", l.ttl).Err()
}

func (l *RoomLiveness) RoomClosed(pin string) {
	_ = l.client.Del(context.Background(), l.key(pin)).Err()
}

func (l *RoomLiveness) key(pin string) string {
	return "room:pin:" + pin
}
