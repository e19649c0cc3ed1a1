package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"when-to-go-service/internal/domain"
	"when-to-go-service/internal/platform/obs"
	"when-to-go-service/internal/ports"
)

var csvHeader = []string{
	"start_location",
	"end_location",
	"departure_time_ist",
	"travel_time_min",
	"traffic_delay_min",
	"route_type",
	"mode",
	"timestamp",
	"alternative_selected",
}

// CSVStore is an append-only, file-backed JourneyStore. One row per
// user-confirmed journey; rows are never rewritten or deleted by the
// service (cleanup is manual). All rendered times are IST.
type CSVStore struct {
	path string

	mu sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Record appends one journey row, writing the header first when the
// file is new or empty.
func (s *CSVStore) Record(ctx context.Context, rec domain.JourneyRecord) (err error) {
	defer obs.Time(ctx, "history.csv.Record")(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &ports.StorageError{Op: "record journey: open history file", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &ports.StorageError{Op: "record journey: stat history file", Err: err}
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return &ports.StorageError{Op: "record journey: write header", Err: err}
		}
	}

	row := []string{
		rec.StartLocation,
		rec.EndLocation,
		rec.DepartureTimeIST,
		strconv.Itoa(rec.TravelTimeMin),
		strconv.Itoa(rec.TrafficDelayMin),
		string(rec.RouteType),
		string(rec.Mode),
		rec.Timestamp.In(domain.IST()).Format(domain.TimestampFormat),
		strconv.Itoa(rec.AlternativeSelected),
	}
	if err := w.Write(row); err != nil {
		return &ports.StorageError{Op: "record journey: write row", Err: err}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &ports.StorageError{Op: "record journey: flush", Err: err}
	}

	return nil
}

// ListByRoute returns recorded journeys matching a start/end pair
// case-insensitively, in append order. A missing history file is an
// empty history, not an error.
func (s *CSVStore) ListByRoute(ctx context.Context, start, end string) (_ []domain.JourneyRecord, err error) {
	defer obs.Time(ctx, "history.csv.ListByRoute")(&err)

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.JourneyRecord, 0, len(all))
	for _, rec := range all {
		if strings.EqualFold(rec.StartLocation, start) && strings.EqualFold(rec.EndLocation, end) {
			out = append(out, rec)
		}
	}

	return out, nil
}

// All returns every recorded journey in append order.
func (s *CSVStore) All(ctx context.Context) ([]domain.JourneyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.JourneyRecord{}, nil
	}
	if err != nil {
		return nil, &ports.StorageError{Op: "list journeys: open history file", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	out := make([]domain.JourneyRecord, 0, 16)
	first := true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ports.StorageError{Op: "list journeys: read history file", Err: err}
		}

		if first {
			first = false
			if row[0] == csvHeader[0] {
				continue
			}
		}

		rec, err := parseRow(row)
		if err != nil {
			return nil, &ports.StorageError{Op: "list journeys: parse row", Err: err}
		}

		out = append(out, rec)
	}

	return out, nil
}

func parseRow(row []string) (domain.JourneyRecord, error) {
	travelMin, err := strconv.Atoi(row[3])
	if err != nil {
		return domain.JourneyRecord{}, fmt.Errorf("travel_time_min %q: %w", row[3], err)
	}

	delayMin, err := strconv.Atoi(row[4])
	if err != nil {
		return domain.JourneyRecord{}, fmt.Errorf("traffic_delay_min %q: %w", row[4], err)
	}

	ts, err := time.ParseInLocation(domain.TimestampFormat, row[7], domain.IST())
	if err != nil {
		return domain.JourneyRecord{}, fmt.Errorf("timestamp %q: %w", row[7], err)
	}

	altSelected, err := strconv.Atoi(row[8])
	if err != nil {
		return domain.JourneyRecord{}, fmt.Errorf("alternative_selected %q: %w", row[8], err)
	}

	return domain.JourneyRecord{
		StartLocation:       row[0],
		EndLocation:         row[1],
		DepartureTimeIST:    row[2],
		TravelTimeMin:       travelMin,
		TrafficDelayMin:     delayMin,
		RouteType:           domain.RouteType(row[5]),
		Mode:                domain.TravelMode(row[6]),
		Timestamp:           ts,
		AlternativeSelected: altSelected,
	}, nil
}
