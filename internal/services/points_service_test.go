// internal/services/points_service_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rewear/rewear-backend/internal/config"
	"github.com/rewear/rewear-backend/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func profileRows(profileID, userID uuid.UUID, points int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "points", "is_admin"}).
		AddRow(profileID.String(), userID.String(), points, false)
}

func TestAwardPointsWritesLedgerAndBalance(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPointsService(db, &config.Config{}, nil, nil)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE user_id (.+) FOR UPDATE`).
		WillReturnRows(profileRows(uuid.New(), userID, 7))
	mock.ExpectQuery(`INSERT INTO "point_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "profiles" SET "points"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	transaction, err := svc.AwardPoints(userID, 5, models.PointTransactionItemListed, "Listing approved", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, transaction.Amount)
	assert.Equal(t, models.PointTransactionItemListed, transaction.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardPointsMissingProfileFailsHard(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPointsService(db, &config.Config{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE user_id (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.AwardPoints(uuid.New(), 5, models.PointTransactionBonus, "welcome", nil, nil)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeductPointsInsufficientBalance(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPointsService(db, &config.Config{}, nil, nil)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE user_id (.+) FOR UPDATE`).
		WillReturnRows(profileRows(uuid.New(), userID, 3))
	mock.ExpectRollback()

	_, err := svc.DeductPoints(userID, 10, models.PointTransactionItemRedeemed, "Redeemed item", nil)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeductPointsWritesNegatedLedgerRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPointsService(db, &config.Config{}, nil, nil)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE user_id (.+) FOR UPDATE`).
		WillReturnRows(profileRows(uuid.New(), userID, 20))
	mock.ExpectQuery(`INSERT INTO "point_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "profiles" SET "points"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	transaction, err := svc.DeductPoints(userID, 12, models.PointTransactionItemRedeemed, "Redeemed item", nil)
	require.NoError(t, err)
	assert.Equal(t, -12, transaction.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestLedgerRoundTrip drives a mixed award/deduct sequence through the
// service and checks the denormalized balance always equals the sum of
// the applied ledger rows, with overdrawing refusals leaving nothing
// behind.
func TestLedgerRoundTrip(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPointsService(db, &config.Config{}, nil, nil)
	userID := uuid.New()
	profileID := uuid.New()

	balance := 0
	var ledger []int

	expectWrite := func(newBalance int) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE user_id (.+) FOR UPDATE`).
			WillReturnRows(profileRows(profileID, userID, balance))
		mock.ExpectQuery(`INSERT INTO "point_transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectExec(`UPDATE "profiles" SET "points"`).
			WithArgs(newBalance, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}
	expectRefusal := func() {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE user_id (.+) FOR UPDATE`).
			WillReturnRows(profileRows(profileID, userID, balance))
		mock.ExpectRollback()
	}

	award := func(amount int) {
		expectWrite(balance + amount)
		transaction, err := svc.AwardPoints(userID, amount, models.PointTransactionBonus, "credit", nil, nil)
		require.NoError(t, err)
		ledger = append(ledger, transaction.Amount)
		balance += amount
	}
	deduct := func(amount int) {
		expectWrite(balance - amount)
		transaction, err := svc.DeductPoints(userID, amount, models.PointTransactionItemRedeemed, "debit", nil)
		require.NoError(t, err)
		ledger = append(ledger, transaction.Amount)
		balance -= amount
	}
	refuse := func(amount int) {
		expectRefusal()
		_, err := svc.DeductPoints(userID, amount, models.PointTransactionItemRedeemed, "debit", nil)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	}

	award(5)
	award(10)
	refuse(20)
	deduct(12)
	award(10)
	deduct(13)
	refuse(1)

	sum := 0
	for _, amount := range ledger {
		sum += amount
	}
	assert.Equal(t, sum, balance)
	assert.Equal(t, 0, balance)
	assert.Len(t, ledger, 5)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardPointsRejectsNegativeAmount(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPointsService(db, &config.Config{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.AwardPoints(uuid.New(), -5, models.PointTransactionBonus, "bad", nil, nil)
	assert.Error(t, err)
}
