package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	expires time.Time
	data    []byte
}

// Cache is a two-tier response cache. The local tier keeps marshalled
// payloads for up to a minute to spare redis round trips on hot keys;
// redis holds the authoritative entry with the caller's expiration.
type Cache struct {
	Addr     string
	Password string
	DB       int
	client   *redis.Client
	ctx      context.Context
	mu       sync.RWMutex
	memCache map[string]localEntry
}

const localCacheTtl = time.Minute

func NewCache(addr, password string, db int) *Cache {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{Addr: addr, Password: password, DB: db, client: rdb, ctx: ctx, memCache: make(map[string]localEntry)}
}

func (c *Cache) getLocal(key string) ([]byte, bool) {
	c.mu.RLock()
	local, found := c.memCache[key]
	c.mu.RUnlock()
	if !found {
		return nil, false
	}
	if time.Now().After(local.expires) {
		c.mu.Lock()
		delete(c.memCache, key)
		c.mu.Unlock()
		return nil, false
	}
	return local.data, true
}

func (c *Cache) setLocal(key string, data []byte, expiration time.Duration) {
	if expiration > localCacheTtl {
		expiration = localCacheTtl
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(expiration), data: data}
	c.mu.Unlock()
}

func (c *Cache) Get(key string, out any) error {
	if data, ok := c.getLocal(key); ok {
		return json.Unmarshal(data, out)
	}
	data, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return err
	}
	c.setLocal(key, []byte(data), localCacheTtl)
	return nil
}

func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.setLocal(key, data, expiration)
	return c.client.Set(c.ctx, key, data, expiration).Err()
}

func (c *Cache) Close() {
	c.client.Close()
}
