package database

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"homework_status_bot/internal/domain/delivery"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to the database named by DATABASE_URL and skips the
// test when it is not set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := NewPostgresConnection(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(ctx, db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostgresDeliveryRepository_Record(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresDeliveryRepository(db)
	ctx := context.Background()

	pollID := uuid.NewString()
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM notification_deliveries WHERE poll_id = $1`, pollID)
	})

	sent := &delivery.Delivery{
		ID:     uuid.NewString(),
		PollID: pollID,
		ChatID: 12345,
		Kind:   delivery.KindStatus,
		Text:   `Status changed for "proj1". Работа проверена: ревьюеру всё понравилось. Ура!`,
	}
	failed := &delivery.Delivery{
		ID:     uuid.NewString(),
		PollID: pollID,
		ChatID: 12345,
		Kind:   delivery.KindFailure,
		Text:   "Program failure: homework API returned unexpected status code: 503",
		Error:  "failed to send telegram message: chat 12345: chat not found",
	}

	require.NoError(t, repo.Record(ctx, sent))
	require.NoError(t, repo.Record(ctx, failed))
	assert.False(t, sent.CreatedAt.IsZero())
	assert.False(t, failed.CreatedAt.IsZero())

	var (
		kind     string
		text     string
		errorCol sql.NullString
	)
	err := db.QueryRowContext(ctx,
		`SELECT kind, text, error FROM notification_deliveries WHERE id = $1`, sent.ID,
	).Scan(&kind, &text, &errorCol)
	require.NoError(t, err)
	assert.Equal(t, string(delivery.KindStatus), kind)
	assert.Equal(t, sent.Text, text)
	assert.False(t, errorCol.Valid, "delivered message stores NULL error")

	err = db.QueryRowContext(ctx,
		`SELECT error FROM notification_deliveries WHERE id = $1`, failed.ID,
	).Scan(&errorCol)
	require.NoError(t, err)
	assert.Equal(t, failed.Error, errorCol.String)
}

func TestPostgresDeliveryRepository_Record_Duplicate(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresDeliveryRepository(db)
	ctx := context.Background()

	d := &delivery.Delivery{
		ID:     uuid.NewString(),
		PollID: uuid.NewString(),
		ChatID: 12345,
		Kind:   delivery.KindStatus,
		Text:   "No homework found for the period.",
	}
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM notification_deliveries WHERE id = $1`, d.ID)
	})

	require.NoError(t, repo.Record(ctx, d))
	assert.ErrorIs(t, repo.Record(ctx, d), ErrDuplicateDelivery)
}
