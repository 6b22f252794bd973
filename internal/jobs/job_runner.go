package jobs

import (
	"database/sql"

	"gearshare-backend/internal/config"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs. Policies like "auto-decline after
// N days unactioned" are deliberately layered here, outside the lifecycle
// engine itself.
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies.
func NewJobRunner(db *sql.DB, store *postgres.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		config: cfg,
	}
}

// Config returns the runner's configuration.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery executes a job body and recovers from panics so one bad job
// cannot take the scheduler down.
func (jr *JobRunner) runWithRecovery(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", name, "panic", r)
		}
	}()
	logger.Info("Running job", "job", name)
	fn()
	logger.Info("Job finished", "job", name)
}
