// internal/infra/database/postgres_delivery_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/delivery"

	"github.com/lib/pq"
)

var ErrDuplicateDelivery = fmt.Errorf("delivery with this id already recorded")

const uniqueViolation = pq.ErrorCode("23505")

type PostgresDeliveryRepository struct {
	db *sql.DB
}

var _ delivery.Repository = (*PostgresDeliveryRepository)(nil)

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{db: db}
}

// Record inserts one delivery attempt and fills in CreatedAt.
func (r *PostgresDeliveryRepository) Record(ctx context.Context, d *delivery.Delivery) error {
	query := `INSERT INTO notification_deliveries (id, poll_id, chat_id, kind, text, error)
               VALUES ($1, $2, $3, $4, $5, $6)
               RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, d.ID, d.PollID, d.ChatID, d.Kind, d.Text, nullableString(d.Error)).Scan(&d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDelivery
		}
		return fmt.Errorf("error recording delivery: %w", err)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
