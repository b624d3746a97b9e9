package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type SubscriberStore struct {
	db *sqlx.DB
}

func NewSubscriberStore(db *sqlx.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// Add records a subscriber email. Re-subscribing is a no-op.
func (s *SubscriberStore) Add(ctx context.Context, email string) error {
	query := `
		INSERT INTO subscribers (email)
		VALUES ($1)
		ON CONFLICT (email) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// ListEmails returns all subscriber emails in signup order.
func (s *SubscriberStore) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	query := `SELECT email FROM subscribers ORDER BY created_at, email`

	if err := s.db.SelectContext(ctx, &emails, query); err != nil {
		return nil, fmt.Errorf("select subscribers: %w", err)
	}
	return emails, nil
}
