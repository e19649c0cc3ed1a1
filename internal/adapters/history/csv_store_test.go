package history

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"when-to-go-service/internal/domain"
)

func testRecord(start, end string, travelMin int) domain.JourneyRecord {
	return domain.JourneyRecord{
		StartLocation:       start,
		EndLocation:         end,
		DepartureTimeIST:    "08:31 AM",
		TravelTimeMin:       travelMin,
		TrafficDelayMin:     4,
		RouteType:           domain.RouteFastest,
		Mode:                domain.ModeCar,
		Timestamp:           time.Date(2026, 1, 1, 8, 0, 0, 0, domain.IST()),
		AlternativeSelected: 0,
	}
}

func TestCSVStoreRecordAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historical_journeys.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	if err := store.Record(ctx, testRecord("Koramangala", "Whitefield", 28)); err != nil {
		t.Fatalf("unexpected record error: %v", err)
	}
	if err := store.Record(ctx, testRecord("Koramangala", "Whitefield", 31)); err != nil {
		t.Fatalf("unexpected record error: %v", err)
	}
	if err := store.Record(ctx, testRecord("Indiranagar", "Airport", 45)); err != nil {
		t.Fatalf("unexpected record error: %v", err)
	}

	recs, err := store.ListByRoute(ctx, "Koramangala", "Whitefield")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	// Append order preserved.
	if recs[0].TravelTimeMin != 28 || recs[1].TravelTimeMin != 31 {
		t.Errorf("travel times = [%d, %d], want [28, 31]", recs[0].TravelTimeMin, recs[1].TravelTimeMin)
	}

	got := recs[0]
	if got.DepartureTimeIST != "08:31 AM" {
		t.Errorf("departure_time_ist = %q", got.DepartureTimeIST)
	}
	if got.RouteType != domain.RouteFastest || got.Mode != domain.ModeCar {
		t.Errorf("route_type/mode = %q/%q", got.RouteType, got.Mode)
	}
	if got.Timestamp.Format(domain.TimestampFormat) != "2026-01-01 08:00:00" {
		t.Errorf("timestamp = %q", got.Timestamp.Format(domain.TimestampFormat))
	}
}

func TestCSVStoreListMatchesCaseInsensitively(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historical_journeys.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	if err := store.Record(ctx, testRecord("Koramangala", "Whitefield", 28)); err != nil {
		t.Fatalf("unexpected record error: %v", err)
	}

	recs, err := store.ListByRoute(ctx, "koramangala", "WHITEFIELD")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
}

func TestCSVStoreWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historical_journeys.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	if err := store.Record(ctx, testRecord("A", "B", 10)); err != nil {
		t.Fatalf("unexpected record error: %v", err)
	}
	if err := store.Record(ctx, testRecord("A", "B", 12)); err != nil {
		t.Fatalf("unexpected record error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "start_location,end_location,departure_time_ist") {
		t.Errorf("unexpected header line %q", lines[0])
	}
	if strings.Contains(lines[1], "start_location") || strings.Contains(lines[2], "start_location") {
		t.Error("header repeated in data rows")
	}
}

func TestCSVStoreMissingFileIsEmptyHistory(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "does_not_exist.csv"))

	recs, err := store.ListByRoute(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty history, got %d records", len(recs))
	}
}
