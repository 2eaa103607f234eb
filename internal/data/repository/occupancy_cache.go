package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OccupancyCache is a read-through cache of occupied seat codes per session.
// It only serves the advisory seat map and pre-flight check; commits never
// consult it.
//
// Each session has a generation that Invalidate bumps. Readers take the
// generation before querying the store and pass it to Set, which drops the
// write when the generation moved in between.
type OccupancyCache interface {
	Get(ctx context.Context, sessionID string) (map[string]struct{}, bool, error)
	Generation(ctx context.Context, sessionID string) (int64, error)
	Set(ctx context.Context, sessionID string, occupied map[string]struct{}, generation int64) error
	Invalidate(ctx context.Context, sessionID string) error
}

type redisOccupancyCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

func NewRedisOccupancyCache(client *redis.Client, ttl time.Duration, log *zap.Logger) OccupancyCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisOccupancyCache{
		client: client,
		ttl:    ttl,
		prefix: "occupancy",
		log:    log.With(zap.String("repository", "occupancy_cache")),
	}
}

func (c *redisOccupancyCache) key(sessionID string) string {
	return c.prefix + ":" + sessionID
}

func (c *redisOccupancyCache) genKey(sessionID string) string {
	return c.prefix + ":gen:" + sessionID
}

func (c *redisOccupancyCache) Get(ctx context.Context, sessionID string) (map[string]struct{}, bool, error) {
	raw, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get occupancy for session %s: %w", sessionID, err)
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		c.log.Warn("Dropping malformed occupancy entry", zap.String("session_id", sessionID), zap.Error(err))
		_ = c.Invalidate(ctx, sessionID)
		return nil, false, nil
	}

	occupied := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		occupied[code] = struct{}{}
	}
	return occupied, true, nil
}

func (c *redisOccupancyCache) Generation(ctx context.Context, sessionID string) (int64, error) {
	return c.generation(ctx, c.client, sessionID)
}

func (c *redisOccupancyCache) generation(ctx context.Context, cmd redis.Cmdable, sessionID string) (int64, error) {
	gen, err := cmd.Get(ctx, c.genKey(sessionID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get occupancy generation for session %s: %w", sessionID, err)
	}
	return gen, nil
}

// Set stores occupancy only while the session generation still equals
// generation. A skipped write is not an error.
func (c *redisOccupancyCache) Set(ctx context.Context, sessionID string, occupied map[string]struct{}, generation int64) error {
	codes := make([]string, 0, len(occupied))
	for code := range occupied {
		codes = append(codes, code)
	}
	payload, err := json.Marshal(codes)
	if err != nil {
		return fmt.Errorf("encode occupancy for session %s: %w", sessionID, err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.generation(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(sessionID), payload, c.ttl)
			return nil
		})
		return err
	}, c.genKey(sessionID))

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		c.log.Debug("Skipped stale occupancy write", zap.String("session_id", sessionID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("set occupancy for session %s: %w", sessionID, err)
	}
	return nil
}

// Invalidate bumps the session generation and drops the cached entry in one
// transaction.
func (c *redisOccupancyCache) Invalidate(ctx context.Context, sessionID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(sessionID))
		pipe.Del(ctx, c.key(sessionID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate occupancy for session %s: %w", sessionID, err)
	}
	return nil
}

var errStaleGeneration = errors.New("occupancy generation changed")

// NewRedisClient connects to Redis and pings it. It returns nil when the
// server cannot be reached so callers run without the cache.
func NewRedisClient(addr, password string, db int, log *zap.Logger) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, occupancy cache disabled", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
