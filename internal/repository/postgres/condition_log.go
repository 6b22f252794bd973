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

type conditionLogRepository struct {
	db *sql.DB
}

func NewConditionLogRepository(db *sql.DB) repository.ConditionLogRepository {
	return &conditionLogRepository{db: db}
}

func (r *conditionLogRepository) Create(ctx context.Context, log *domain.ConditionLog) error {
	photos, err := json.Marshal(log.Photos)
	if err != nil {
		return err
	}
	log.CreatedOn = time.Now()
	query := `INSERT INTO condition_logs (id, rental_id, equipment_id, log_type, condition, notes, photos,
	            verified_by, acknowledged, damage_reported, damage_description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.ExecContext(ctx, query,
		log.ID, log.RentalID, log.EquipmentID, log.Type, log.Condition, log.Notes, photos,
		log.VerifiedBy, log.Acknowledged, log.DamageReported, log.DamageDescription, log.CreatedOn)
	return err
}

func (r *conditionLogRepository) GetByID(ctx context.Context, id string) (*domain.ConditionLog, error) {
	query := `SELECT id, rental_id, equipment_id, log_type, condition, notes, photos,
	            verified_by, acknowledged, damage_reported, damage_description, created_on
	          FROM condition_logs WHERE id = $1`
	log, err := scanConditionLog(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return log, err
}

func (r *conditionLogRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.ConditionLog, error) {
	query := `SELECT id, rental_id, equipment_id, log_type, condition, notes, photos,
	            verified_by, acknowledged, damage_reported, damage_description, created_on
	          FROM condition_logs WHERE rental_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.ConditionLog
	for rows.Next() {
		log, err := scanConditionLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func (r *conditionLogRepository) HasType(ctx context.Context, rentalID int32, logType domain.ConditionLogType) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM condition_logs WHERE rental_id = $1 AND log_type = $2)`
	err := r.db.QueryRowContext(ctx, query, rentalID, logType).Scan(&exists)
	return exists, err
}

func scanConditionLog(row rowScanner) (*domain.ConditionLog, error) {
	log := &domain.ConditionLog{}
	var photos []byte
	err := row.Scan(&log.ID, &log.RentalID, &log.EquipmentID, &log.Type, &log.Condition, &log.Notes,
		&photos, &log.VerifiedBy, &log.Acknowledged, &log.DamageReported, &log.DamageDescription, &log.CreatedOn)
	if err != nil {
		return nil, err
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &log.Photos); err != nil {
			return nil, fmt.Errorf("failed to decode photos: %w", err)
		}
	}
	return log, nil
}
