package postgres

import (
	"database/sql"

	"gearshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.RentalRepository
	repository.TransitionRepository
	repository.ConditionLogRepository
	repository.FlagRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		EquipmentRepository:    NewEquipmentRepository(db),
		RentalRepository:       NewRentalRepository(db),
		TransitionRepository:   NewTransitionRepository(db),
		ConditionLogRepository: NewConditionLogRepository(db),
		FlagRepository:         NewFlagRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
