package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/repository"

	"github.com/lib/pq"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (owner_id, name, description, categories, price_per_day_cents, replacement_cost_cents, condition, metro, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		eq.OwnerID, eq.Name, eq.Description, pq.Array(eq.Categories),
		eq.PricePerDayCents, eq.ReplacementCostCents, eq.Condition, eq.Metro, eq.Status,
		time.Now()).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT id, owner_id, name, description, categories, price_per_day_cents, replacement_cost_cents, condition, metro, status, created_on
	          FROM equipment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&eq.ID, &eq.OwnerID, &eq.Name, &eq.Description, pq.Array(&eq.Categories),
		&eq.PricePerDayCents, &eq.ReplacementCostCents, &eq.Condition, &eq.Metro, &eq.Status, &eq.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, description=$2, categories=$3, price_per_day_cents=$4, replacement_cost_cents=$5, condition=$6, metro=$7, status=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		eq.Name, eq.Description, pq.Array(eq.Categories), eq.PricePerDayCents,
		eq.ReplacementCostCents, eq.Condition, eq.Metro, eq.Status, eq.ID)
	return err
}

func (r *equipmentRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Equipment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM equipment WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, owner_id, name, description, categories, price_per_day_cents, replacement_cost_cents, condition, metro, status, created_on
	          FROM equipment WHERE owner_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(&eq.ID, &eq.OwnerID, &eq.Name, &eq.Description, pq.Array(&eq.Categories),
			&eq.PricePerDayCents, &eq.ReplacementCostCents, &eq.Condition, &eq.Metro, &eq.Status, &eq.CreatedOn); err != nil {
			return nil, 0, err
		}
		items = append(items, eq)
	}
	return items, count, rows.Err()
}

func (r *equipmentRepository) GetAvailability(ctx context.Context, equipmentID int32) (*domain.Availability, error) {
	av := &domain.Availability{EquipmentID: equipmentID}

	query := `SELECT min_rental_days, buffer_days FROM equipment_availability WHERE equipment_id = $1`
	err := r.db.QueryRowContext(ctx, query, equipmentID).Scan(&av.MinRentalDays, &av.BufferDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT blocked_date FROM equipment_blocked_dates WHERE equipment_id = $1 ORDER BY blocked_date`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		av.BlockedDates = append(av.BlockedDates, domain.Day(d))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rangeRows, err := r.db.QueryContext(ctx,
		`SELECT start_date, end_date FROM equipment_available_ranges WHERE equipment_id = $1 ORDER BY start_date`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rangeRows.Close()
	for rangeRows.Next() {
		var rg domain.DateRange
		if err := rangeRows.Scan(&rg.Start, &rg.End); err != nil {
			return nil, err
		}
		rg.Start, rg.End = domain.Day(rg.Start), domain.Day(rg.End)
		av.AvailableRanges = append(av.AvailableRanges, rg)
	}
	return av, rangeRows.Err()
}

func (r *equipmentRepository) SaveAvailability(ctx context.Context, av *domain.Availability) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO equipment_availability (equipment_id, min_rental_days, buffer_days)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (equipment_id) DO UPDATE SET min_rental_days = $2, buffer_days = $3`
	if _, err := tx.ExecContext(ctx, query, av.EquipmentID, av.MinRentalDays, av.BufferDays); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM equipment_blocked_dates WHERE equipment_id = $1`, av.EquipmentID); err != nil {
		return err
	}
	for _, d := range av.BlockedDates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO equipment_blocked_dates (equipment_id, blocked_date) VALUES ($1, $2)`,
			av.EquipmentID, domain.Day(d)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM equipment_available_ranges WHERE equipment_id = $1`, av.EquipmentID); err != nil {
		return err
	}
	for _, rg := range av.AvailableRanges {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO equipment_available_ranges (equipment_id, start_date, end_date) VALUES ($1, $2, $3)`,
			av.EquipmentID, domain.Day(rg.Start), domain.Day(rg.End)); err != nil {
			return err
		}
	}

	return tx.Commit()
}
