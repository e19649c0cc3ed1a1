package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"when-to-go-service/internal/domain"
)

// Predicted traffic drifts quickly; cached route responses go stale
// within about a minute.
const routeCacheTTL = 60 * time.Second

// Redis-backed cache of route responses keyed by the full query
// (endpoints, departure instant, mode, route type, alternatives count).
// It absorbs repeated scans over overlapping windows without spending
// the provider's daily request quota twice on the same instant.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: routeCacheTTL}
}

func routeKey(q domain.RouteQuery) string {
	return "routes:" + q.Origin.PathSegment() +
		":" + q.Destination.PathSegment() +
		":" + q.DepartAt.UTC().Format(time.RFC3339) +
		":" + string(q.Mode) +
		":" + string(q.RouteType) +
		":" + strconv.Itoa(q.MaxAlternatives)
}

// Fetch cached candidates for one query.
func (r *RedisRouteCache) Get(ctx context.Context, q domain.RouteQuery) ([]domain.RouteCandidate, bool, error) {
	if r.client == nil {
		return nil, false, errors.New("route cache: client is nil")
	}

	b, err := r.client.Get(ctx, routeKey(q)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}

	var candidates []domain.RouteCandidate
	if err := json.Unmarshal(b, &candidates); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode entry: %w", err)
	}

	return candidates, true, nil
}

// Store candidates for one query under the cache TTL.
func (r *RedisRouteCache) Put(ctx context.Context, q domain.RouteQuery, candidates []domain.RouteCandidate) error {
	if r.client == nil {
		return errors.New("route cache: client is nil")
	}

	b, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("insert route cache: encode entry: %w", err)
	}

	if err := r.client.Set(ctx, routeKey(q), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
