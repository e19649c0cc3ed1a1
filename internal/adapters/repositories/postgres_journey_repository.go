package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"when-to-go-service/internal/domain"
	"when-to-go-service/internal/platform/obs"
	"when-to-go-service/internal/ports"
)

// Postgres-backed implementation of the JourneyStore port. Mirrors the
// CSV history file column-for-column so the two stores stay
// interchangeable; rows are append-only here as well.
type PostgresJourneyRepository struct{ DB *sql.DB }

func NewPostgresJourneyRepository(db *sql.DB) *PostgresJourneyRepository {
	return &PostgresJourneyRepository{DB: db}
}

// Append one journey row.
func (r *PostgresJourneyRepository) Record(ctx context.Context, rec domain.JourneyRecord) (err error) {
	defer obs.Time(ctx, "history.postgres.Record")(&err)

	if r.DB == nil {
		return &ports.StorageError{Op: "record journey", Err: errors.New("DB is nil")}
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	q := `
	INSERT INTO journeys (
		start_location,
		end_location,
		departure_time_ist,
		travel_time_min,
		traffic_delay_min,
		route_type,
		mode,
		recorded_at,
		alternative_selected
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.DB.ExecContext(ctx, q,
		rec.StartLocation,
		rec.EndLocation,
		rec.DepartureTimeIST,
		rec.TravelTimeMin,
		rec.TrafficDelayMin,
		string(rec.RouteType),
		string(rec.Mode),
		rec.Timestamp.In(domain.IST()).Format(domain.TimestampFormat),
		rec.AlternativeSelected,
	)
	if err != nil {
		return &ports.StorageError{Op: "record journey: insert", Err: err}
	}

	return nil
}

// Return recorded journeys for a start/end pair, matched
// case-insensitively, in append order.
func (r *PostgresJourneyRepository) ListByRoute(ctx context.Context, start, end string) (_ []domain.JourneyRecord, err error) {
	defer obs.Time(ctx, "history.postgres.ListByRoute")(&err)

	if r.DB == nil {
		return nil, &ports.StorageError{Op: "list journeys", Err: errors.New("DB is nil")}
	}

	q := `
	SELECT
		start_location,
		end_location,
		departure_time_ist,
		travel_time_min,
		traffic_delay_min,
		route_type,
		mode,
		recorded_at,
		alternative_selected
	FROM journeys
	WHERE LOWER(start_location) = LOWER($1)
	  AND LOWER(end_location) = LOWER($2)
	ORDER BY journey_id;
	`
	rows, err := r.DB.QueryContext(ctx, q, start, end)
	if err != nil {
		return nil, &ports.StorageError{Op: "list journeys: query journeys table", Err: err}
	}
	defer rows.Close()

	out := make([]domain.JourneyRecord, 0, 16)
	for rows.Next() {
		var rec domain.JourneyRecord
		var routeType, mode, recordedAt string
		if err := rows.Scan(
			&rec.StartLocation,
			&rec.EndLocation,
			&rec.DepartureTimeIST,
			&rec.TravelTimeMin,
			&rec.TrafficDelayMin,
			&routeType,
			&mode,
			&recordedAt,
			&rec.AlternativeSelected,
		); err != nil {
			return nil, &ports.StorageError{Op: "list journeys: scan row", Err: err}
		}

		ts, err := time.ParseInLocation(domain.TimestampFormat, recordedAt, domain.IST())
		if err != nil {
			return nil, &ports.StorageError{Op: "list journeys: parse recorded_at", Err: err}
		}

		rec.RouteType = domain.RouteType(routeType)
		rec.Mode = domain.TravelMode(mode)
		rec.Timestamp = ts
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &ports.StorageError{Op: "list journeys: row iteration", Err: err}
	}

	return out, nil
}

// Initialize the journey history schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS journeys (
		journey_id SERIAL PRIMARY KEY,
		start_location TEXT NOT NULL,
		end_location TEXT NOT NULL,
		departure_time_ist TEXT NOT NULL,
		travel_time_min INTEGER NOT NULL,
		traffic_delay_min INTEGER NOT NULL,
		route_type TEXT NOT NULL,
		mode TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		alternative_selected INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create journeys table: %w", err)
	}

	return nil
}

// ImportJourneys copies records (typically loaded from the CSV history
// file) into Postgres inside one transaction.
func ImportJourneys(ctx context.Context, db *sql.DB, recs []domain.JourneyRecord) error {
	if db == nil {
		return errors.New("import journeys: DB is nil")
	}

	if len(recs) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import journeys: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := `
	INSERT INTO journeys (
		start_location,
		end_location,
		departure_time_ist,
		travel_time_min,
		traffic_delay_min,
		route_type,
		mode,
		recorded_at,
		alternative_selected
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("import journeys: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			rec.StartLocation,
			rec.EndLocation,
			rec.DepartureTimeIST,
			rec.TravelTimeMin,
			rec.TrafficDelayMin,
			string(rec.RouteType),
			string(rec.Mode),
			rec.Timestamp.In(domain.IST()).Format(domain.TimestampFormat),
			rec.AlternativeSelected,
		); err != nil {
			return fmt.Errorf("import journeys: insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import journeys: commit tx: %w", err)
	}

	return nil
}
