package postgres

import (
	"context"
	"database/sql"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/repository"
)

type transitionRepository struct {
	db *sql.DB
}

func NewTransitionRepository(db *sql.DB) repository.TransitionRepository {
	return &transitionRepository{db: db}
}

func (r *transitionRepository) Create(ctx context.Context, tr *domain.RentalTransition) error {
	tr.CreatedOn = time.Now()
	query := `INSERT INTO rental_transitions (rental_id, from_status, to_status, actor_id, note, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		tr.RentalID, tr.From, tr.To, tr.ActorID, tr.Note, tr.CreatedOn).Scan(&tr.ID)
}

func (r *transitionRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.RentalTransition, error) {
	query := `SELECT id, rental_id, from_status, to_status, actor_id, note, created_on
	          FROM rental_transitions WHERE rental_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transitions []domain.RentalTransition
	for rows.Next() {
		var tr domain.RentalTransition
		if err := rows.Scan(&tr.ID, &tr.RentalID, &tr.From, &tr.To, &tr.ActorID, &tr.Note, &tr.CreatedOn); err != nil {
			return nil, err
		}
		transitions = append(transitions, tr)
	}
	return transitions, rows.Err()
}
