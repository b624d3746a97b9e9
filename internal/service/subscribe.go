package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrEmailRequired rejects a subscribe request with no email address.
var ErrEmailRequired = errors.New("email required")

// SubscribeService handles subscription intake. Storage is pluggable;
// a store failure is logged but never fails the request, keeping the
// intake best-effort.
type SubscribeService struct {
	store  SubscriberStore
	logger *slog.Logger
}

func NewSubscribeService(store SubscriberStore, logger *slog.Logger) *SubscribeService {
	return &SubscribeService{
		store:  store,
		logger: logger,
	}
}

func (s *SubscribeService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	if err := s.store.Add(ctx, email); err != nil {
		s.logger.Error("failed to store subscriber", "error", err)
	} else {
		s.logger.Info("subscriber added", "email", email)
	}

	return nil
}
