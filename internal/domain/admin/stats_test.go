package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestStatsRepository_Snapshot(t *testing.T) {
	db, mock := mockDB(t)
	repo := NewStatsRepository(db)
	dayStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM "users" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "total"}).
			AddRow("student", 10).
			AddRow("artisan", 4).
			AddRow("admin", 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE role = \$1 AND is_verified = \$2`).
		WithArgs("artisan", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`FROM "services" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "total"}).AddRow("active", 7))
	mock.ExpectQuery(`FROM "bookings" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "total"}).
			AddRow("pending", 2).
			AddRow("completed", 5))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "verification_requests" WHERE status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contact_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE created_at >= \$1 AND created_at < \$2`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	st, err := repo.Snapshot(context.Background(), dayStart)
	require.NoError(t, err)

	assert.Equal(t, int64(15), st.TotalUsers)
	assert.Equal(t, int64(4), st.UsersByRole["artisan"])
	assert.Equal(t, int64(3), st.VerifiedArtisans)
	assert.Equal(t, int64(7), st.ServicesByStatus["active"])
	assert.Equal(t, int64(5), st.BookingsByStatus["completed"])
	assert.Equal(t, int64(2), st.PendingVerifications)
	assert.Equal(t, int64(12), st.ContactEvents)
	assert.Equal(t, int64(1), st.BookingsToday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_QueryError(t *testing.T) {
	db, mock := mockDB(t)

	mock.ExpectQuery(`FROM "users" GROUP BY`).WillReturnError(errors.New("connection reset"))

	_, err := NewStatsRepository(db).Snapshot(context.Background(), time.Now())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
