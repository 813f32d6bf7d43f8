package rediscache

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Client wraps a redis connection and namespaces every key with the instance name.
type Client struct {
	c      *redis.Client
	prefix string
}

func New(addr, instanceName string) *Client {
	return &Client{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		prefix: instanceName,
	}
}

func (r *Client) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Client) Ping(ctx context.Context) error {
	if err := r.c.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}

func (r *Client) Close() error {
	return r.c.Close()
}
