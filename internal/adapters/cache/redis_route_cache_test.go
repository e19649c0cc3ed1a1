package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"when-to-go-service/internal/domain"
)

func newRouteCacheFixture(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRouteCache(client), mr
}

func routeCacheQuery() domain.RouteQuery {
	return domain.RouteQuery{
		Origin:          domain.Coordinates{Lat: 12.9352, Lon: 77.6245},
		Destination:     domain.Coordinates{Lat: 12.9698, Lon: 77.75},
		DepartAt:        time.Date(2026, 1, 1, 8, 31, 0, 0, time.UTC),
		Mode:            domain.ModeCar,
		RouteType:       domain.RouteFastest,
		MaxAlternatives: 2,
	}
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	rc, _ := newRouteCacheFixture(t)
	q := routeCacheQuery()

	candidates := []domain.RouteCandidate{
		{
			DurationSeconds: 1800,
			DelaySeconds:    120,
			DistanceMeters:  18500,
			Traffic:         domain.TrafficSmooth,
			Geometry:        []domain.Coordinates{{Lat: 12.93, Lon: 77.62}},
		},
		{DurationSeconds: 2100, DelaySeconds: 700, DistanceMeters: 16400, Traffic: domain.TrafficHeavy},
	}

	if err := rc.Put(context.Background(), q, candidates); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}

	got, ok, err := rc.Get(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].DurationSeconds != 1800 || got[0].Traffic != domain.TrafficSmooth {
		t.Errorf("candidate 0 = %+v", got[0])
	}
	if len(got[0].Geometry) != 1 || got[0].Geometry[0].Lat != 12.93 {
		t.Errorf("candidate 0 geometry = %+v", got[0].Geometry)
	}
}

func TestRedisRouteCacheMissOnDifferentQuery(t *testing.T) {
	rc, _ := newRouteCacheFixture(t)
	q := routeCacheQuery()

	if err := rc.Put(context.Background(), q, []domain.RouteCandidate{{DurationSeconds: 1800}}); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}

	// Same endpoints, different departure instant.
	other := q
	other.DepartAt = q.DepartAt.Add(10 * time.Minute)

	_, ok, err := rc.Get(context.Background(), other)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if ok {
		t.Error("expected a cache miss for a different departure instant")
	}
}

func TestRedisRouteCacheExpires(t *testing.T) {
	rc, mr := newRouteCacheFixture(t)
	q := routeCacheQuery()

	if err := rc.Put(context.Background(), q, []domain.RouteCandidate{{DurationSeconds: 1800}}); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}

	mr.FastForward(routeCacheTTL + time.Second)

	_, ok, err := rc.Get(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if ok {
		t.Error("expected entry to expire after the TTL")
	}
}
