package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/routr/backend/internal/domain"
)

// TripRepo defines the persistence operations for trip records.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip together with its stops in one transaction and
	// returns the persisted record (with DB-generated ids and timestamps).
	Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)

	// GetByID retrieves a single trip with its stops and linked fuel purchase.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)

	// ListPaged returns one page of trips ordered by date descending, with
	// stops populated, and the total number of trips.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error)

	// List returns every trip with its stops, ordered by date descending.
	List(ctx context.Context) ([]domain.TripRecord, error)

	// Update overwrites the trip row and synchronises its stops: stops with an
	// ID are updated, stops without one are inserted, and stored stops that are
	// absent from trip.Stops are deleted. Returns domain.ErrNotFound if the trip
	// (or a referenced stop) does not exist.
	Update(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)

	// Delete removes a trip by ID. Stops and the linked fuel purchase are
	// removed by ON DELETE CASCADE. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// UniqueLocations returns the distinct start and end locations that contain
	// query (case-insensitive), sorted. An empty query matches every location.
	UniqueLocations(ctx context.Context, query string) ([]string, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, date, company_name, company_address, driver_name, manifest,
		truck_no, trailer_no, start_time, end_time, starting_mileage, ending_mileage,
		start_location, end_location, created_at, updated_at`

func tripArgs(trip domain.TripRecord) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":               trip.ID,
		"date":             trip.Date,
		"company_name":     trip.CompanyName,
		"company_address":  trip.CompanyAddress,
		"driver_name":      trip.DriverName,
		"manifest":         trip.Manifest,
		"truck_no":         trip.TruckNo,
		"trailer_no":       trip.TrailerNo,
		"start_time":       clockToPg(trip.StartTime),
		"end_time":         clockToPg(trip.EndTime),
		"starting_mileage": trip.StartMileage,
		"ending_mileage":   trip.EndMileage,
		"start_location":   trip.StartLocation,
		"end_location":     trip.EndLocation,
	}
}

// Create inserts the trip row and then each stop in order, inside one transaction.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	const q = `
		INSERT INTO trip_records (date, company_name, company_address, driver_name, manifest,
			truck_no, trailer_no, start_time, end_time, starting_mileage, ending_mileage,
			start_location, end_location)
		VALUES (@date, @company_name, @company_address, @driver_name, @manifest,
			@truck_no, @trailer_no, @start_time, @end_time, @starting_mileage, @ending_mileage,
			@start_location, @end_location)
		RETURNING ` + tripColumns

	var created domain.TripRecord
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanTrip(tx.QueryRow(ctx, q, tripArgs(trip)))
		if err != nil {
			return err
		}
		created.Stops = make([]domain.Stop, 0, len(trip.Stops))
		for i, s := range trip.Stops {
			s.TripID = created.ID
			s.Position = i
			stored, err := insertStop(ctx, tx, s)
			if err != nil {
				return err
			}
			created.Stops = append(created.Stops, stored)
		}
		return nil
	})
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("repo.TripRepo.Create: %w", mapError(err))
	}
	return created, nil
}

// GetByID retrieves a trip by primary key, then its stops and fuel purchase.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	const q = `SELECT ` + tripColumns + ` FROM trip_records WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapError(err))
	}

	trip.Stops, err = listStops(ctx, r.db, id)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("repo.TripRepo.GetByID: stops: %w", err)
	}

	trip.FuelPurchase, err = linkedFuel(ctx, r.db, id)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("repo.TripRepo.GetByID: fuel purchase: %w", err)
	}

	return trip, nil
}

// linkedFuel returns the fuel purchase attached to a trip, or nil if none.
func linkedFuel(ctx context.Context, q db, tripID uuid.UUID) (*domain.FuelPurchase, error) {
	const fq = `SELECT ` + fuelColumns + ` FROM fuel_purchases WHERE trip_id = @id`
	fuel, err := scanFuel(q.QueryRow(ctx, fq, pgx.NamedArgs{"id": tripID}))
	switch err := mapError(err); {
	case err == nil:
		return &fuel, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	default:
		return nil, err
	}
}

// ListPaged returns one page of trips and the total row count.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trip_records`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + tripColumns + `
		FROM trip_records
		ORDER BY date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// List returns every trip, most recent first.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.TripRecord, error) {
	const q = `SELECT ` + tripColumns + ` FROM trip_records ORDER BY date DESC, created_at DESC`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// queryTrips runs a trip SELECT and attaches stops for every returned trip
// with a single additional query.
func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.TripRecord, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.TripRecord{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		t.Stops = []domain.Stop{}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if len(trips) == 0 {
		return trips, nil
	}

	ids := make([]uuid.UUID, len(trips))
	index := make(map[uuid.UUID]int, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
		index[t.ID] = i
	}

	const sq = `SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = ANY(@ids::uuid[])
		ORDER BY trip_id, position, created_at`

	srows, err := r.db.Query(ctx, sq, pgx.NamedArgs{"ids": uuidStrings(ids)})
	if err != nil {
		return nil, fmt.Errorf("stops: %w", err)
	}
	defer srows.Close()

	for srows.Next() {
		s, err := scanStop(srows)
		if err != nil {
			return nil, fmt.Errorf("stops: scan: %w", err)
		}
		i := index[s.TripID]
		trips[i].Stops = append(trips[i].Stops, s)
	}
	if err := srows.Err(); err != nil {
		return nil, fmt.Errorf("stops: rows: %w", err)
	}
	return trips, nil
}

// Update overwrites the trip row and reconciles its stops in one transaction.
// The returned trip carries the linked fuel purchase, as GetByID does.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	const q = `
		UPDATE trip_records
		SET date             = @date,
		    company_name     = @company_name,
		    company_address  = @company_address,
		    driver_name      = @driver_name,
		    manifest         = @manifest,
		    truck_no         = @truck_no,
		    trailer_no       = @trailer_no,
		    start_time       = @start_time,
		    end_time         = @end_time,
		    starting_mileage = @starting_mileage,
		    ending_mileage   = @ending_mileage,
		    start_location   = @start_location,
		    end_location     = @end_location,
		    updated_at       = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	var updated domain.TripRecord
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		updated, err = scanTrip(tx.QueryRow(ctx, q, tripArgs(trip)))
		if err != nil {
			return err
		}
		updated.Stops, err = syncStops(ctx, tx, trip.ID, trip.Stops)
		if err != nil {
			return err
		}
		updated.FuelPurchase, err = linkedFuel(ctx, tx, trip.ID)
		return err
	})
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("repo.TripRepo.Update: %w", mapError(err))
	}
	return updated, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trip_records WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// UniqueLocations unions matching start and end locations. UNION removes
// duplicates across both columns.
func (r *pgTripRepo) UniqueLocations(ctx context.Context, query string) ([]string, error) {
	const q = `
		SELECT location FROM (
			SELECT start_location AS location
			FROM trip_records
			WHERE strpos(lower(start_location), lower(@q)) > 0
			UNION
			SELECT end_location
			FROM trip_records
			WHERE strpos(lower(end_location), lower(@q)) > 0
		) AS locations
		ORDER BY location`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"q": query})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.UniqueLocations: %w", err)
	}
	defer rows.Close()

	locations := []string{}
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.UniqueLocations: scan: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.UniqueLocations: rows: %w", err)
	}
	return locations, nil
}

// scanTrip maps a single database row into a domain.TripRecord.
// It handles the UUID, DATE, TIME, and NUMERIC conversions.
func scanTrip(s scanner) (domain.TripRecord, error) {
	var (
		t          domain.TripRecord
		id         pgtype.UUID
		date       pgtype.Date
		start, end pgtype.Time
		sm, em     pgtype.Numeric
	)

	err := s.Scan(&id, &date, &t.CompanyName, &t.CompanyAddress, &t.DriverName, &t.Manifest,
		&t.TruckNo, &t.TrailerNo, &start, &end, &sm, &em,
		&t.StartLocation, &t.EndLocation, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.TripRecord{}, mapError(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Date = date.Time
	t.StartTime = clockFromPg(start)
	t.EndTime = clockFromPg(end)
	t.StartMileage = numericToDecimal(sm)
	t.EndMileage = numericToDecimal(em)
	return t, nil
}
