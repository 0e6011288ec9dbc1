package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/routr/backend/internal/domain"
)

// StopRepo defines the persistence operations for Stops.
// All write and single-read operations are scoped by tripID to enforce ownership.
type StopRepo interface {
	// Create appends a new stop to the end of its trip and returns the persisted record.
	// Returns domain.ErrNotFound if the parent trip does not exist.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByID retrieves a single stop by its UUID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)

	// ListByTripID returns all stops for a trip ordered by position.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// Update overwrites the mutable fields of a stop, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// Delete removes a stop by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, trip_id, position, customer_name, customer_address,
		pallets_in, pallets_out, comments, created_at, updated_at`

// Create inserts the stop after the trip's current last position.
func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO stops (trip_id, position, customer_name, customer_address,
			pallets_in, pallets_out, comments)
		VALUES (@trip_id,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM stops WHERE trip_id = @trip_id),
			@customer_name, @customer_address, @pallets_in, @pallets_out, @comments)
		RETURNING ` + stopColumns

	result, err := scanStop(r.db.QueryRow(ctx, q, stopArgs(stop)))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", mapError(err))
	}
	return result, nil
}

// GetByID retrieves a stop by primary key within its trip.
func (r *pgStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE id = @id AND trip_id = @trip_id`

	result, err := scanStop(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID}))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns the stops of a trip in visiting order.
// Always returns a non-nil slice.
func (r *pgStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	stops, err := listStops(ctx, r.db, tripID)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	return stops, nil
}

// Update overwrites the mutable fields of a stop. Position is left unchanged.
func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		UPDATE stops
		SET customer_name    = @customer_name,
		    customer_address = @customer_address,
		    pallets_in       = @pallets_in,
		    pallets_out      = @pallets_out,
		    comments         = @comments,
		    updated_at       = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + stopColumns

	result, err := scanStop(r.db.QueryRow(ctx, q, stopArgs(stop)))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", mapError(err))
	}
	return result, nil
}

// Delete removes a stop within its trip.
func (r *pgStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	const q = `DELETE FROM stops WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func stopArgs(s domain.Stop) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":               s.ID,
		"trip_id":          s.TripID,
		"position":         s.Position,
		"customer_name":    s.CustomerName,
		"customer_address": s.CustomerAddress,
		"pallets_in":       s.PalletsIn,
		"pallets_out":      s.PalletsOut,
		"comments":         s.Comments,
	}
}

// insertStop writes a stop at its explicit Position. Used by TripRepo when a
// trip and its stops are saved together.
func insertStop(ctx context.Context, q db, s domain.Stop) (domain.Stop, error) {
	const sql = `
		INSERT INTO stops (trip_id, position, customer_name, customer_address,
			pallets_in, pallets_out, comments)
		VALUES (@trip_id, @position, @customer_name, @customer_address,
			@pallets_in, @pallets_out, @comments)
		RETURNING ` + stopColumns

	return scanStop(q.QueryRow(ctx, sql, stopArgs(s)))
}

// listStops returns a trip's stops ordered by position.
func listStops(ctx context.Context, q db, tripID uuid.UUID) ([]domain.Stop, error) {
	const sql = `SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY position, created_at`

	rows, err := q.Query(ctx, sql, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []domain.Stop{}
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return stops, nil
}

// syncStops makes the stored stops of tripID match want, in want's order.
// Entries with an ID must already belong to the trip.
func syncStops(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, want []domain.Stop) ([]domain.Stop, error) {
	const update = `
		UPDATE stops
		SET position         = @position,
		    customer_name    = @customer_name,
		    customer_address = @customer_address,
		    pallets_in       = @pallets_in,
		    pallets_out      = @pallets_out,
		    comments         = @comments,
		    updated_at       = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + stopColumns

	const prune = `
		DELETE FROM stops
		WHERE trip_id = @trip_id
		  AND NOT (id = ANY(@keep::uuid[]))`

	// Stops missing from want are deleted before the rest are written.
	var keep []uuid.UUID
	for _, s := range want {
		if s.ID != uuid.Nil {
			keep = append(keep, s.ID)
		}
	}
	if _, err := tx.Exec(ctx, prune, pgx.NamedArgs{"trip_id": tripID, "keep": uuidStrings(keep)}); err != nil {
		return nil, fmt.Errorf("prune stops: %w", err)
	}

	out := make([]domain.Stop, 0, len(want))
	for i, s := range want {
		s.TripID = tripID
		s.Position = i

		var (
			stored domain.Stop
			err    error
		)
		if s.ID == uuid.Nil {
			stored, err = insertStop(ctx, tx, s)
		} else {
			stored, err = scanStop(tx.QueryRow(ctx, update, stopArgs(s)))
		}
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		out = append(out, stored)
	}
	return out, nil
}

// scanStop maps a single database row into a domain.Stop.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st     domain.Stop
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &st.Position, &st.CustomerName, &st.CustomerAddress,
		&st.PalletsIn, &st.PalletsOut, &st.Comments, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return domain.Stop{}, mapError(err)
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	return st, nil
}
