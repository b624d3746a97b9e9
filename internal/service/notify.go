package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"blog_server/internal/config"
	"blog_server/internal/domain"
)

// ErrInvalidEvent rejects a publish event missing its title or slug.
var ErrInvalidEvent = errors.New("publish event requires title and slug")

var notifyTemplate = template.Must(template.New("notify").Parse(`
<h2>{{.Title}}</h2>
<p>A new article is live on the blog.</p>
<a href="{{.ReadURL}}">Read Now →</a>
`))

// NotifyService dispatches a fixed-template email when a post is
// published. Recipients come from configuration; when none are
// configured the subscriber store supplies them. A configured event
// publisher additionally fans the event out to the message exchange.
type NotifyService struct {
	mailer    Mailer
	store     SubscriberStore
	publisher EventPublisher
	cfg       config.EmailConfig
	logger    *slog.Logger
}

func NewNotifyService(
	mailer Mailer,
	store SubscriberStore,
	publisher EventPublisher,
	cfg config.EmailConfig,
	logger *slog.Logger,
) *NotifyService {
	return &NotifyService{
		mailer:    mailer,
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// PublishPosted composes and sends the notification. Send failure
// propagates to the caller; event fanout failure is logged only.
func (s *NotifyService) PublishPosted(ctx context.Context, event domain.PublishEvent) error {
	if event.Title == "" || event.Slug == "" {
		return ErrInvalidEvent
	}

	recipients, err := s.recipients(ctx)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.logger.Warn("no notification recipients configured, skipping send", "slug", event.Slug)
		return nil
	}

	var body bytes.Buffer
	err = notifyTemplate.Execute(&body, struct {
		Title   string
		ReadURL string
	}{
		Title:   event.Title,
		ReadURL: fmt.Sprintf("%s/blog/%s", strings.TrimRight(s.cfg.SiteURL, "/"), event.Slug),
	})
	if err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	email := domain.Email{
		From:    s.cfg.From,
		To:      recipients,
		Subject: "New Blog Published: " + event.Title,
		HTML:    body.String(),
	}

	if err := s.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	s.logger.Info("publish notification sent",
		"slug", event.Slug,
		"recipients", len(recipients),
	)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("publish event fanout failed", "slug", event.Slug, "error", err)
		}
	}

	return nil
}

func (s *NotifyService) recipients(ctx context.Context) ([]string, error) {
	if len(s.cfg.Recipients) > 0 {
		return s.cfg.Recipients, nil
	}
	if s.store == nil {
		return nil, nil
	}

	emails, err := s.store.ListEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return emails, nil
}
