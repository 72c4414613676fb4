package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tierColumns() []string {
	return []string{
		"id", "name", "monthly_price_cents", "yearly_price_cents", "one_time_price_cents",
		"features", "active", "is_hidden", "signup_code", "created_at",
	}
}

func discountColumns() []string {
	return []string{"id", "code", "discount_type", "discount_value", "active", "times_used", "created_at"}
}

func TestListTiers(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	now := time.Now()

	t.Run("public listing excludes hidden tiers", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, monthly_price_cents.*FROM pricing_tiers.*WHERE active = TRUE AND is_hidden = FALSE`).
			WillReturnRows(sqlmock.NewRows(tierColumns()).
				AddRow(1, "Basic", 9900, 99000, nil, "{}", true, false, nil, now).
				AddRow(2, "Performance", 15000, 150000, nil, "{}", true, false, nil, now))

		tiers, err := repo.ListTiers(context.Background(), false)
		require.NoError(t, err)
		assert.Len(t, tiers, 2)
		assert.Equal(t, "Basic", tiers[0].Name)
	})

	t.Run("admin listing includes hidden tiers", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, monthly_price_cents.*FROM pricing_tiers.*WHERE active = TRUE ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(tierColumns()).
				AddRow(1, "Basic", 9900, 99000, nil, "{}", true, false, nil, now).
				AddRow(3, "Founders", 7500, nil, nil, "{}", true, true, "FOUNDER2024", now))

		tiers, err := repo.ListTiers(context.Background(), true)
		require.NoError(t, err)
		assert.Len(t, tiers, 2)
		assert.True(t, tiers[1].IsHidden)
		require.NotNil(t, tiers[1].SignupCode)
		assert.Equal(t, "FOUNDER2024", *tiers[1].SignupCode)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTierByID(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	now := time.Now()

	t.Run("active tier found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name.*FROM pricing_tiers.*WHERE id = \$1 AND active = TRUE`).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows(tierColumns()).
				AddRow(2, "Performance", 15000, 150000, nil, `{"Open gym","Classes"}`, true, false, nil, now))

		tier, err := repo.GetTierByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Performance", tier.Name)
		require.NotNil(t, tier.MonthlyPriceCents)
		assert.Equal(t, int64(15000), *tier.MonthlyPriceCents)
		assert.Equal(t, pq.StringArray{"Open gym", "Classes"}, tier.Features)
	})

	t.Run("missing or inactive tier", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name.*FROM pricing_tiers.*WHERE id = \$1 AND active = TRUE`).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows(tierColumns()))

		tier, err := repo.GetTierByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrTierNotFound)
		assert.Nil(t, tier)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDiscount(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	now := time.Now()

	t.Run("code resolves regardless of case", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, code, discount_type.*FROM discount_codes.*WHERE LOWER\(code\) = LOWER\(\$1\) AND active = TRUE`).
			WithArgs("summer20").
			WillReturnRows(sqlmock.NewRows(discountColumns()).
				AddRow(1, "SUMMER20", "percent", 20, true, 5, now))

		d, err := repo.ResolveDiscount(context.Background(), "summer20")
		require.NoError(t, err)
		assert.Equal(t, "SUMMER20", d.Code)
		assert.Equal(t, DiscountPercent, d.DiscountType)
		assert.Equal(t, int64(20), d.DiscountValue)
	})

	t.Run("unknown code", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, code, discount_type.*FROM discount_codes.*WHERE LOWER\(code\) = LOWER\(\$1\) AND active = TRUE`).
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows(discountColumns()))

		d, err := repo.ResolveDiscount(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrDiscountNotFound)
		assert.Nil(t, d)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementDiscountUsage(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))

	mock.ExpectExec(`UPDATE discount_codes.*SET times_used = times_used \+ 1.*WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.IncrementDiscountUsage(context.Background(), 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDiscount(t *testing.T) {
	now := time.Now()

	t.Run("created", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))

		mock.ExpectQuery(`INSERT INTO discount_codes.*`).
			WithArgs("DROPIN10", "fixed", int64(1000)).
			WillReturnRows(sqlmock.NewRows(discountColumns()).
				AddRow(2, "DROPIN10", "fixed", 1000, true, 0, now))

		d, err := repo.CreateDiscount(context.Background(), CreateDiscountRequest{
			Code: "DROPIN10", DiscountType: "fixed", DiscountValue: 1000,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, d.ID)
		assert.True(t, d.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate code", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))

		mock.ExpectQuery(`INSERT INTO discount_codes.*`).
			WithArgs("SUMMER20", "percent", int64(20)).
			WillReturnError(&pq.Error{Code: "23505"})

		d, err := repo.CreateDiscount(context.Background(), CreateDiscountRequest{
			Code: "SUMMER20", DiscountType: "percent", DiscountValue: 20,
		})
		assert.ErrorIs(t, err, ErrCodeTaken)
		assert.Nil(t, d)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeactivateDiscount(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))

	t.Run("deactivated", func(t *testing.T) {
		mock.ExpectExec(`UPDATE discount_codes SET active = FALSE WHERE id = \$1`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeactivateDiscount(context.Background(), 1))
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectExec(`UPDATE discount_codes SET active = FALSE WHERE id = \$1`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeactivateDiscount(context.Background(), 99), ErrDiscountNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
