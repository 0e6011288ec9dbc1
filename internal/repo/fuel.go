package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/routr/backend/internal/domain"
)

// FuelPurchaseRepo defines the persistence operations for fuel purchase receipts.
type FuelPurchaseRepo interface {
	// Create inserts a receipt. Returns domain.ErrConflict if the linked trip
	// already has a fuel purchase and domain.ErrNotFound if the trip is unknown.
	Create(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)

	// GetByID returns domain.ErrNotFound if no receipt with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error)

	// ListPaged returns one page of receipts ordered by date descending and
	// the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error)

	// List returns every receipt ordered by date descending.
	List(ctx context.Context) ([]domain.FuelPurchase, error)

	// Update overwrites a receipt. Same error contract as Create, plus
	// domain.ErrNotFound when the receipt itself does not exist.
	Update(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)

	// Delete removes a receipt. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgFuelPurchaseRepo struct {
	db db
}

// NewFuelPurchaseRepo constructs a FuelPurchaseRepo backed by the provided db connection.
func NewFuelPurchaseRepo(db db) FuelPurchaseRepo {
	return &pgFuelPurchaseRepo{db: db}
}

const fuelColumns = `id, trip_id, state, date, invoice_number, gallons, dollar_amount,
		fuel_stop_name, city, created_at, updated_at`

func fuelArgs(fp domain.FuelPurchase) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":             fp.ID,
		"trip_id":        fp.TripID, // nil becomes NULL
		"state":          fp.State,
		"date":           fp.Date,
		"invoice_number": fp.InvoiceNumber,
		"gallons":        fp.Gallons,
		"dollar_amount":  fp.DollarAmount,
		"fuel_stop_name": fp.StopName,
		"city":           fp.City,
	}
}

func (r *pgFuelPurchaseRepo) Create(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	const q = `
		INSERT INTO fuel_purchases (trip_id, state, date, invoice_number, gallons,
			dollar_amount, fuel_stop_name, city)
		VALUES (@trip_id, @state, @date, @invoice_number, @gallons,
			@dollar_amount, @fuel_stop_name, @city)
		RETURNING ` + fuelColumns

	result, err := scanFuel(r.db.QueryRow(ctx, q, fuelArgs(fp)))
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("repo.FuelPurchaseRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgFuelPurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error) {
	const q = `SELECT ` + fuelColumns + ` FROM fuel_purchases WHERE id = @id`

	result, err := scanFuel(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("repo.FuelPurchaseRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgFuelPurchaseRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM fuel_purchases`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.FuelPurchaseRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + fuelColumns + `
		FROM fuel_purchases
		ORDER BY date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	out, err := r.query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.FuelPurchaseRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

func (r *pgFuelPurchaseRepo) List(ctx context.Context) ([]domain.FuelPurchase, error) {
	const q = `SELECT ` + fuelColumns + ` FROM fuel_purchases ORDER BY date DESC, created_at DESC`

	out, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.FuelPurchaseRepo.List: %w", err)
	}
	return out, nil
}

func (r *pgFuelPurchaseRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.FuelPurchase, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.FuelPurchase{}
	for rows.Next() {
		fp, err := scanFuel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *pgFuelPurchaseRepo) Update(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	const q = `
		UPDATE fuel_purchases
		SET trip_id        = @trip_id,
		    state          = @state,
		    date           = @date,
		    invoice_number = @invoice_number,
		    gallons        = @gallons,
		    dollar_amount  = @dollar_amount,
		    fuel_stop_name = @fuel_stop_name,
		    city           = @city,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + fuelColumns

	result, err := scanFuel(r.db.QueryRow(ctx, q, fuelArgs(fp)))
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("repo.FuelPurchaseRepo.Update: %w", mapError(err))
	}
	return result, nil
}

func (r *pgFuelPurchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM fuel_purchases WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.FuelPurchaseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FuelPurchaseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanFuel maps a single database row into a domain.FuelPurchase.
// Errors are returned raw so callers can distinguish pgx.ErrNoRows.
func scanFuel(s scanner) (domain.FuelPurchase, error) {
	var (
		fp       domain.FuelPurchase
		id       pgtype.UUID
		tripID   pgtype.UUID
		date     pgtype.Date
		gal, usd pgtype.Numeric
	)

	err := s.Scan(&id, &tripID, &fp.State, &date, &fp.InvoiceNumber, &gal, &usd,
		&fp.StopName, &fp.City, &fp.CreatedAt, &fp.UpdatedAt)
	if err != nil {
		return domain.FuelPurchase{}, err
	}

	fp.ID = uuid.UUID(id.Bytes)
	if tripID.Valid {
		tid := uuid.UUID(tripID.Bytes)
		fp.TripID = &tid
	}
	fp.Date = date.Time
	fp.Gallons = numericToDecimal(gal)
	fp.DollarAmount = numericToDecimal(usd)
	return fp, nil
}
