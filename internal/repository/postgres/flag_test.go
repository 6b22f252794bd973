package postgres

import (
	"context"
	"testing"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flagRows = []string{
	"id", "rental_id", "category", "severity", "selected_issue", "additional_context",
	"status", "created_by", "created_on", "acknowledged_on", "resolved_at", "resolved_by", "resolution_note",
}

func TestFlagRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewFlagRepository(db)
	ctx := context.Background()

	flag := &domain.TaskFlag{
		ID:            "f-123",
		RentalID:      1,
		Category:      domain.FlagCategorySafetyConcern,
		Severity:      domain.FlagSeverityCritical,
		SelectedIssue: "hydraulic leak",
		Status:        domain.FlagStatusOpen,
		CreatedBy:     3,
	}

	mock.ExpectExec("INSERT INTO task_flags").
		WithArgs(flag.ID, flag.RentalID, flag.Category, flag.Severity, flag.SelectedIssue,
			flag.AdditionalContext, flag.Status, flag.CreatedBy, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(ctx, flag)
	assert.NoError(t, err)
	assert.False(t, flag.CreatedOn.IsZero())
}

func TestFlagRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewFlagRepository(db)
	ctx := context.Background()

	t.Run("OpenFlag", func(t *testing.T) {
		rows := sqlmock.NewRows(flagRows).
			AddRow("f-123", 1, "SAFETY_CONCERN", "CRITICAL", "hydraulic leak", "",
				"OPEN", 3, time.Now(), nil, nil, nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM task_flags WHERE id = \\$1").
			WithArgs("f-123").
			WillReturnRows(rows)

		flag, err := repo.GetByID(ctx, "f-123")
		require.NoError(t, err)
		assert.Equal(t, domain.FlagStatusOpen, flag.Status)
		assert.Nil(t, flag.AcknowledgedOn)
		assert.Nil(t, flag.ResolvedAt)
		assert.Nil(t, flag.ResolvedBy)
	})

	t.Run("ResolvedFlag", func(t *testing.T) {
		resolvedAt := time.Now()
		rows := sqlmock.NewRows(flagRows).
			AddRow("f-124", 1, "EQUIPMENT_ISSUE", "HIGH", "blade dull", "",
				"RESOLVED", 3, time.Now(), nil, resolvedAt, int32(2), "sharpened")

		mock.ExpectQuery("SELECT (.+) FROM task_flags WHERE id = \\$1").
			WithArgs("f-124").
			WillReturnRows(rows)

		flag, err := repo.GetByID(ctx, "f-124")
		require.NoError(t, err)
		assert.Equal(t, domain.FlagStatusResolved, flag.Status)
		require.NotNil(t, flag.ResolvedBy)
		assert.Equal(t, int32(2), *flag.ResolvedBy)
		assert.Equal(t, "sharpened", flag.ResolutionNote)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM task_flags WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(flagRows))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFlagRepository_HasCriticalOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewFlagRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := repo.HasCriticalOpen(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)
}
