package sessioncache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the Redis-backed session store holding per-user cart copies.
type Cache struct {
	client *redis.Client
}

func New(url string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

func (c *Cache) ClearCart(ctx context.Context, userID string) error {
	return c.client.Del(ctx, "session:cart:"+userID).Err()
}

// StartKeepAlive pings Redis on an interval until ctx is cancelled. Low-tier
// Redis plans drop idle connections after five minutes, so the ping has to
// arrive before that.
func (c *Cache) StartKeepAlive(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.client.Ping(ctx).Err(); err != nil {
					log.Println("Redis keep-alive ping failed:", err)
				}
			}
		}
	}()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
