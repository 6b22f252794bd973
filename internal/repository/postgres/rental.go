package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, equipment_id, renter_id, owner_id, start_date, end_date, total_days,
	price_per_day_cents, rental_fee_cents, service_fee_cents, total_price_cents,
	status, owner_notes, pickup_checklist, return_checklist,
	ext_new_end_date, ext_additional_days, ext_additional_cost_cents, ext_status, ext_requested_on,
	created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.RentalRequest) error {
	pickup, returns, err := marshalChecklists(rt)
	if err != nil {
		return err
	}
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	query := `INSERT INTO rentals (equipment_id, renter_id, owner_id, start_date, end_date, total_days,
	            price_per_day_cents, rental_fee_cents, service_fee_cents, total_price_cents,
	            status, owner_notes, pickup_checklist, return_checklist, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rt.EquipmentID, rt.RenterID, rt.OwnerID, rt.StartDate, rt.EndDate, rt.TotalDays,
		rt.PricePerDayCents, rt.RentalFeeCents, rt.ServiceFeeCents, rt.TotalPriceCents,
		rt.Status, rt.OwnerNotes, pickup, returns, rt.CreatedOn, rt.UpdatedOn).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rt, err
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.RentalRequest) error {
	pickup, returns, err := marshalChecklists(rt)
	if err != nil {
		return err
	}

	var extNewEnd, extRequestedOn *time.Time
	var extDays, extCost *int32
	var extStatus *string
	if rt.Extension != nil {
		extNewEnd = &rt.Extension.NewEndDate
		extDays = &rt.Extension.AdditionalDays
		extCost = &rt.Extension.AdditionalCostCents
		s := string(rt.Extension.Status)
		extStatus = &s
		extRequestedOn = &rt.Extension.RequestedOn
	}

	rt.UpdatedOn = time.Now()
	query := `UPDATE rentals SET start_date=$1, end_date=$2, total_days=$3,
	            rental_fee_cents=$4, service_fee_cents=$5, total_price_cents=$6,
	            status=$7, owner_notes=$8, pickup_checklist=$9, return_checklist=$10,
	            ext_new_end_date=$11, ext_additional_days=$12, ext_additional_cost_cents=$13,
	            ext_status=$14, ext_requested_on=$15, updated_on=$16
	          WHERE id=$17`
	_, err = r.db.ExecContext(ctx, query,
		rt.StartDate, rt.EndDate, rt.TotalDays,
		rt.RentalFeeCents, rt.ServiceFeeCents, rt.TotalPriceCents,
		rt.Status, rt.OwnerNotes, pickup, returns,
		extNewEnd, extDays, extCost, extStatus, extRequestedOn, rt.UpdatedOn, rt.ID)
	return err
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *rentalRepository) list(ctx context.Context, keyColumn string, keyID int32, status string, page, pageSize int32) ([]domain.RentalRequest, int32, error) {
	offset := (page - 1) * pageSize
	where := fmt.Sprintf(" WHERE %s = $1", keyColumn)

	args := []interface{}{keyID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM rentals"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + rentalColumns + " FROM rentals" + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rentals, err := r.queryRentals(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListRealizedByEquipment(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE equipment_id = $1
	            AND status IN ('APPROVED', 'ACTIVE', 'EXTENSION_REQUESTED')
	            AND start_date <= $3 AND end_date >= $2
	          ORDER BY start_date`
	return r.queryRentals(ctx, query, equipmentID, from, to)
}

func (r *rentalRepository) ListStaleRequested(ctx context.Context, cutoff time.Time) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = 'REQUESTED' AND created_on < $1 ORDER BY created_on`
	return r.queryRentals(ctx, query, cutoff)
}

func (r *rentalRepository) ListEndingOn(ctx context.Context, day time.Time) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = 'ACTIVE' AND end_date = $1 ORDER BY id`
	return r.queryRentals(ctx, query, domain.Day(day))
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.RentalRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.RentalRequest
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (*domain.RentalRequest, error) {
	rt := &domain.RentalRequest{}
	var pickup, returns []byte
	var extNewEnd, extRequestedOn sql.NullTime
	var extDays, extCost sql.NullInt32
	var extStatus sql.NullString

	err := row.Scan(
		&rt.ID, &rt.EquipmentID, &rt.RenterID, &rt.OwnerID, &rt.StartDate, &rt.EndDate, &rt.TotalDays,
		&rt.PricePerDayCents, &rt.RentalFeeCents, &rt.ServiceFeeCents, &rt.TotalPriceCents,
		&rt.Status, &rt.OwnerNotes, &pickup, &returns,
		&extNewEnd, &extDays, &extCost, &extStatus, &extRequestedOn,
		&rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}

	rt.StartDate = domain.Day(rt.StartDate)
	rt.EndDate = domain.Day(rt.EndDate)

	if len(pickup) > 0 {
		if err := json.Unmarshal(pickup, &rt.PickupChecklist); err != nil {
			return nil, fmt.Errorf("failed to decode pickup checklist: %w", err)
		}
	}
	if len(returns) > 0 {
		if err := json.Unmarshal(returns, &rt.ReturnChecklist); err != nil {
			return nil, fmt.Errorf("failed to decode return checklist: %w", err)
		}
	}

	if extStatus.Valid {
		rt.Extension = &domain.ExtensionRequest{
			NewEndDate:          domain.Day(extNewEnd.Time),
			AdditionalDays:      extDays.Int32,
			AdditionalCostCents: extCost.Int32,
			Status:              domain.ExtensionStatus(extStatus.String),
			RequestedOn:         extRequestedOn.Time,
		}
	}
	return rt, nil
}

func marshalChecklists(rt *domain.RentalRequest) ([]byte, []byte, error) {
	pickup, err := json.Marshal(rt.PickupChecklist)
	if err != nil {
		return nil, nil, err
	}
	returns, err := json.Marshal(rt.ReturnChecklist)
	if err != nil {
		return nil, nil, err
	}
	return pickup, returns, nil
}
