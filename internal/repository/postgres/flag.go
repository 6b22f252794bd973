package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/repository"
)

type flagRepository struct {
	db *sql.DB
}

func NewFlagRepository(db *sql.DB) repository.FlagRepository {
	return &flagRepository{db: db}
}

const flagColumns = `id, rental_id, category, severity, selected_issue, additional_context,
	status, created_by, created_on, acknowledged_on, resolved_at, resolved_by, resolution_note`

func (r *flagRepository) Create(ctx context.Context, flag *domain.TaskFlag) error {
	flag.CreatedOn = time.Now()
	query := `INSERT INTO task_flags (id, rental_id, category, severity, selected_issue, additional_context, status, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		flag.ID, flag.RentalID, flag.Category, flag.Severity, flag.SelectedIssue,
		flag.AdditionalContext, flag.Status, flag.CreatedBy, flag.CreatedOn)
	return err
}

func (r *flagRepository) GetByID(ctx context.Context, id string) (*domain.TaskFlag, error) {
	query := `SELECT ` + flagColumns + ` FROM task_flags WHERE id = $1`
	flag, err := scanFlag(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return flag, err
}

func (r *flagRepository) Update(ctx context.Context, flag *domain.TaskFlag) error {
	query := `UPDATE task_flags SET severity=$1, status=$2, acknowledged_on=$3, resolved_at=$4, resolved_by=$5, resolution_note=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		flag.Severity, flag.Status, flag.AcknowledgedOn, flag.ResolvedAt, flag.ResolvedBy, flag.ResolutionNote, flag.ID)
	return err
}

func (r *flagRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error) {
	query := `SELECT ` + flagColumns + ` FROM task_flags WHERE rental_id = $1 ORDER BY created_on`
	return r.queryFlags(ctx, query, rentalID)
}

func (r *flagRepository) ListOpenByRental(ctx context.Context, rentalID int32) ([]domain.TaskFlag, error) {
	query := `SELECT ` + flagColumns + ` FROM task_flags
	          WHERE rental_id = $1 AND status IN ('OPEN', 'ACKNOWLEDGED') ORDER BY created_on`
	return r.queryFlags(ctx, query, rentalID)
}

func (r *flagRepository) HasCriticalOpen(ctx context.Context, rentalID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM task_flags
	          WHERE rental_id = $1 AND severity = 'CRITICAL' AND status IN ('OPEN', 'ACKNOWLEDGED'))`
	err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&exists)
	return exists, err
}

func (r *flagRepository) queryFlags(ctx context.Context, query string, args ...interface{}) ([]domain.TaskFlag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []domain.TaskFlag
	for rows.Next() {
		flag, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		flags = append(flags, *flag)
	}
	return flags, rows.Err()
}

func scanFlag(row rowScanner) (*domain.TaskFlag, error) {
	flag := &domain.TaskFlag{}
	var acknowledgedOn, resolvedAt sql.NullTime
	var resolvedBy sql.NullInt32
	var resolutionNote sql.NullString
	err := row.Scan(&flag.ID, &flag.RentalID, &flag.Category, &flag.Severity, &flag.SelectedIssue,
		&flag.AdditionalContext, &flag.Status, &flag.CreatedBy, &flag.CreatedOn,
		&acknowledgedOn, &resolvedAt, &resolvedBy, &resolutionNote)
	if err != nil {
		return nil, err
	}
	if acknowledgedOn.Valid {
		flag.AcknowledgedOn = &acknowledgedOn.Time
	}
	if resolvedAt.Valid {
		flag.ResolvedAt = &resolvedAt.Time
	}
	if resolvedBy.Valid {
		flag.ResolvedBy = &resolvedBy.Int32
	}
	flag.ResolutionNote = resolutionNote.String
	return flag, nil
}
