package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blog_server/internal/domain"
)

// View models shaped for the page templates, distinct from the raw API
// payloads.

type HomePage struct {
	Featured *domain.Post
	Latest   []domain.Post
}

type ArticlePage struct {
	Post    domain.Post
	Related []domain.Post
}

type TopicPage struct {
	Category  domain.Category
	Posts     []domain.Post
	Subtopics []domain.Category
}

type SearchPage struct {
	Query   string
	Posts   []domain.Post
	NoQuery bool
}

const latestPostCount = 5

// PageService builds the view model for each server-rendered page. A
// missing primary entity or a failed primary fetch yields
// domain.ErrNotFound; failed auxiliary fetches degrade to empty
// sections and never fail the page.
type PageService struct {
	source ContentSource
	logger *slog.Logger
}

func NewPageService(source ContentSource, logger *slog.Logger) *PageService {
	return &PageService{
		source: source,
		logger: logger,
	}
}

// Home renders the listing page: newest post featured, the next five as
// the latest grid. Upstream failure degrades to the empty state.
func (s *PageService) Home(ctx context.Context) *HomePage {
	posts, err := s.source.ListPosts(ctx)
	if err != nil {
		s.logger.Error("home listing fetch failed", "error", err)
		return &HomePage{}
	}

	page := &HomePage{}
	if len(posts) > 0 {
		page.Featured = &posts[0]
		rest := posts[1:]
		if len(rest) > latestPostCount {
			rest = rest[:latestPostCount]
		}
		page.Latest = rest
	}
	return page
}

// Article renders the article page for a slug. Related posts are a
// dependent second call filtered by the article's categories; its
// failure leaves the section empty.
func (s *PageService) Article(ctx context.Context, slug string) (*ArticlePage, error) {
	post, err := s.source.PostBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("article fetch failed", "slug", slug, "error", err)
		}
		return nil, domain.ErrNotFound
	}

	page := &ArticlePage{Post: *post}

	if len(post.Categories) > 0 {
		categorySlugs := make([]string, len(post.Categories))
		for i, cat := range post.Categories {
			categorySlugs[i] = cat.Slug
		}

		related, err := s.source.RelatedPosts(ctx, slug, categorySlugs)
		if err != nil {
			s.logger.Error("related posts fetch failed", "slug", slug, "error", err)
		} else {
			page.Related = related
		}
	}

	return page, nil
}

// Topic renders the category listing page for a slug.
func (s *PageService) Topic(ctx context.Context, slug string) (*TopicPage, error) {
	topic, err := s.source.Topic(ctx, slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("topic fetch failed", "slug", slug, "error", err)
		}
		return nil, domain.ErrNotFound
	}

	return &TopicPage{
		Category:  topic.Category,
		Posts:     topic.Posts,
		Subtopics: topic.Subtopics,
	}, nil
}

// SearchResults renders the full search results page. An empty query is
// the explicit no-query state and issues no upstream call.
func (s *PageService) SearchResults(ctx context.Context, query string) *SearchPage {
	if strings.TrimSpace(query) == "" {
		return &SearchPage{Query: query, NoQuery: true}
	}

	posts, err := s.source.SearchPosts(ctx, query)
	if err != nil {
		s.logger.Error("search fetch failed", "query", query, "error", err)
		return &SearchPage{Query: query}
	}

	return &SearchPage{Query: query, Posts: posts}
}

// AllPosts backs the client-side filtering endpoint with the full post
// list.
func (s *PageService) AllPosts(ctx context.Context) ([]domain.Post, error) {
	return s.source.ListPosts(ctx)
}

// Instant backs the search widget's dropdown lookup. Blank queries and
// upstream failures both yield an empty result set.
func (s *PageService) Instant(ctx context.Context, query string) []domain.Post {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	posts, err := s.source.InstantSearch(ctx, query)
	if err != nil {
		s.logger.Error("instant search failed", "query", query, "error", err)
		return nil
	}
	return posts
}
