package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"when-to-go-service/internal/adapters/cache"
	"when-to-go-service/internal/domain"
	"when-to-go-service/internal/platform/obs"
	"when-to-go-service/internal/ports"
)

// TomTomProvider implements Geocoder and RouteProvider against the
// TomTom Search and Routing APIs.
//
// It coordinates:
//   - Location text normalization
//   - Persistent geocode caching
//   - Short-TTL route response caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use. Both caches are optional;
// a nil cache means calls go straight to the API.
type TomTomProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	geocodeCache *cache.SqliteGeocodeCache
	routeCache   *cache.RedisRouteCache
}

func NewTomTomProvider(
	apiKey string,
	geocodeCache *cache.SqliteGeocodeCache,
	routeCache *cache.RedisRouteCache,
) (*TomTomProvider, error) {
	if apiKey == "" {
		return nil, errors.New("TomTom api key is empty")
	}

	provider := &TomTomProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.tomtom.com",
		geocodeCache: geocodeCache,
		routeCache:   routeCache,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (t *TomTomProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type geocodeResponse struct {
	Results []struct {
		Position struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"position"`
	} `json:"results"`
}

// Resolve a location string to coordinates using the TomTom Search API
// (/search/2/geocode). Results are cached persistently; hits never
// touch the network.
func (t *TomTomProvider) Resolve(ctx context.Context, location string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "tomtom.Resolve")(&err)

	norm := t.normalize(location)
	if norm == "" {
		return domain.Coordinates{}, errors.New("resolve location: location must be non-empty")
	}

	if t.geocodeCache != nil {
		hit, ok, err := t.geocodeCache.Get(ctx, norm)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("resolve location: geocode cache: %w", err)
		}
		if ok {
			return hit, nil
		}
	}

	endpoint := t.baseURL + "/search/2/geocode/" + url.PathEscape(norm) + ".json"

	resp, err := t.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := t.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("key", t.apiKey)
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, &ports.ProviderError{Op: "tomtom: geocode", Err: err}
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, &ports.ProviderError{
			Op:  "tomtom: geocode",
			Err: fmt.Errorf("decode geocode response: %w", err),
		}
	}

	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, &ports.NotFoundError{Location: location}
	}

	coords := domain.Coordinates{
		Lat: decoded.Results[0].Position.Lat,
		Lon: decoded.Results[0].Position.Lon,
	}

	if t.geocodeCache != nil {
		if err := t.geocodeCache.Put(ctx, norm, coords); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}

type routeResponse struct {
	Routes []struct {
		Summary struct {
			TravelTimeInSeconds   int `json:"travelTimeInSeconds"`
			TrafficDelayInSeconds int `json:"trafficDelayInSeconds"`
			LengthInMeters        int `json:"lengthInMeters"`
		} `json:"summary"`
		Legs []struct {
			Points []struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"points"`
		} `json:"legs"`
	} `json:"routes"`
}

// FetchRoutes returns candidate routes for one departure instant using
// the TomTom Routing API (/routing/1/calculateRoute), ordered by
// provider preference with the primary route first. An empty slice
// (no routes, nil error) means the provider found no route for the
// instant.
func (t *TomTomProvider) FetchRoutes(ctx context.Context, q domain.RouteQuery) (_ []domain.RouteCandidate, err error) {
	defer obs.Time(ctx, "tomtom.FetchRoutes")(&err)

	if t.routeCache != nil {
		hit, ok, err := t.routeCache.Get(ctx, q)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if ok {
			return hit, nil
		}
	}

	endpoint := fmt.Sprintf(
		"%s/routing/1/calculateRoute/%s:%s/json",
		t.baseURL, q.Origin.PathSegment(), q.Destination.PathSegment(),
	)

	resp, err := t.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := t.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		p := req.URL.Query()
		p.Set("key", t.apiKey)
		p.Set("traffic", "true")
		p.Set("routeType", string(q.RouteType))
		p.Set("travelMode", string(q.Mode))
		p.Set("maxAlternatives", strconv.Itoa(q.MaxAlternatives))
		if !q.DepartAt.IsZero() {
			p.Set("departAt", q.DepartAt.UTC().Format(time.RFC3339))
		}
		req.URL.RawQuery = p.Encode()
		return req, nil
	})
	if err != nil {
		return nil, &ports.ProviderError{Op: "tomtom: calculate route", Err: err}
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ports.ProviderError{
			Op:  "tomtom: calculate route",
			Err: fmt.Errorf("decode route response: %w", err),
		}
	}

	candidates := make([]domain.RouteCandidate, 0, len(decoded.Routes))
	for _, route := range decoded.Routes {
		var geometry []domain.Coordinates
		for _, leg := range route.Legs {
			for _, p := range leg.Points {
				geometry = append(geometry, domain.Coordinates{Lat: p.Latitude, Lon: p.Longitude})
			}
		}

		candidates = append(candidates, domain.RouteCandidate{
			DurationSeconds: route.Summary.TravelTimeInSeconds,
			DelaySeconds:    route.Summary.TrafficDelayInSeconds,
			DistanceMeters:  route.Summary.LengthInMeters,
			Geometry:        geometry,
		})
	}

	if t.routeCache != nil && len(candidates) > 0 {
		if err := t.routeCache.Put(ctx, q, candidates); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return candidates, nil
}
