// Package memory holds the fallback subscriber store used when no
// database is configured, preserving the intake endpoint's
// accept-and-succeed behavior.
package memory

import (
	"context"
	"sync"
)

type SubscriberStore struct {
	mu     sync.Mutex
	emails []string
	seen   map[string]struct{}
}

func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{
		seen: make(map[string]struct{}),
	}
}

func (s *SubscriberStore) Add(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[email]; ok {
		return nil
	}
	s.seen[email] = struct{}{}
	s.emails = append(s.emails, email)
	return nil
}

func (s *SubscriberStore) ListEmails(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emails := make([]string, len(s.emails))
	copy(emails, s.emails)
	return emails, nil
}
