package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"pollution_tracker/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logColumns() []string {
	return []string{"id", "user_id", "lat", "lon", "aqi", "category", "advice", "created_at"}
}

func TestAQILogRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAQILogRepository(mock)
	now := time.Now()

	entry := &model.AQILog{
		UserID:   1,
		Lat:      12.9,
		Lon:      77.6,
		AQI:      150,
		Category: "Moderate",
		Advice:   "Sensitive groups should reduce outdoor activity.",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO aqi_logs`)).
		WithArgs(entry.UserID, entry.Lat, entry.Lon, entry.AQI, entry.Category, entry.Advice).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	err = repo.Create(context.Background(), entry)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), entry.ID)
	assert.Equal(t, now, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAQILogRepository_FindAll_NewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAQILogRepository(mock)

	t1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	// The query orders by created_at DESC; rows come back newest first.
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).
		WillReturnRows(pgxmock.NewRows(logColumns()).
			AddRow(int64(3), 1, 12.9, 77.6, 150, "Moderate", "Sensitive groups should reduce outdoor activity.", t3).
			AddRow(int64(2), 1, 12.9, 77.6, 100, "Fair", "Acceptable air quality.", t2).
			AddRow(int64(1), 1, 12.9, 77.6, 50, "Good", "Air quality is satisfactory.", t1))

	logs, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, t3, logs[0].CreatedAt)
	assert.Equal(t, t2, logs[1].CreatedAt)
	assert.Equal(t, t1, logs[2].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAQILogRepository_FindAll_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAQILogRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM aqi_logs`)).
		WillReturnRows(pgxmock.NewRows(logColumns()))

	logs, err := repo.FindAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAQILogRepository_DeleteAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAQILogRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM aqi_logs`)).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	err = repo.DeleteAll(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
