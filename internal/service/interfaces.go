package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"blog_server/internal/domain"
)

type ContentSource interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	PostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	RelatedPosts(ctx context.Context, currentSlug string, categorySlugs []string) ([]domain.Post, error)
	Topic(ctx context.Context, slug string) (*domain.Topic, error)
	SearchPosts(ctx context.Context, query string) ([]domain.Post, error)
	InstantSearch(ctx context.Context, query string) ([]domain.Post, error)
}

type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

type SubscriberStore interface {
	Add(ctx context.Context, email string) error
	ListEmails(ctx context.Context) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.PublishEvent) error
	Close() error
}
