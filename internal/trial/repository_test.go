package trial

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trialColumns() []string {
	return []string{"id", "user_id", "tier", "status", "start_date", "trial_ends_at", "end_date", "created_at", "updated_at"}
}

func TestGetByUserID(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	now := time.Now()
	endsAt := now.Add(7 * 24 * time.Hour)

	t.Run("trial found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, tier, status.*FROM user_trials.*WHERE user_id = \$1`).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows(trialColumns()).
				AddRow(1, 42, "pro", "trialing", now, endsAt, nil, now, now))

		trial, err := repo.GetByUserID(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, 42, trial.UserID)
		assert.Equal(t, StatusTrialing, trial.Status)
		require.NotNil(t, trial.TrialEndsAt)
	})

	t.Run("no record", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, tier, status.*FROM user_trials.*WHERE user_id = \$1`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(trialColumns()))

		trial, err := repo.GetByUserID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrTrialNotFound)
		assert.Nil(t, trial)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	now := time.Now()
	endsAt := now.Add(7 * 24 * time.Hour)

	t.Run("first save inserts", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO user_trials.*ON CONFLICT \(user_id\) DO UPDATE.*`).
			WithArgs(42, "pro", StatusTrialing, now, &endsAt, nil).
			WillReturnRows(sqlmock.NewRows(trialColumns()).
				AddRow(1, 42, "pro", "trialing", now, endsAt, nil, now, now))

		saved, err := repo.Save(context.Background(), &UserTrial{
			UserID: 42, Tier: TierPro, Status: StatusTrialing,
			StartDate: now, TrialEndsAt: &endsAt,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, saved.ID)
	})

	t.Run("second save overwrites the same row", func(t *testing.T) {
		endDate := now.Add(30 * 24 * time.Hour)
		mock.ExpectQuery(`INSERT INTO user_trials.*ON CONFLICT \(user_id\) DO UPDATE.*`).
			WithArgs(42, "pro", StatusActive, now, nil, &endDate).
			WillReturnRows(sqlmock.NewRows(trialColumns()).
				AddRow(1, 42, "pro", "active", now, nil, endDate, now, now))

		saved, err := repo.Save(context.Background(), &UserTrial{
			UserID: 42, Tier: TierPro, Status: StatusActive,
			StartDate: now, EndDate: &endDate,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, saved.ID)
		assert.Equal(t, StatusActive, saved.Status)
		assert.Nil(t, saved.TrialEndsAt)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
