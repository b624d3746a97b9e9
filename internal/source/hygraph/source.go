package hygraph

import (
	"context"

	"blog_server/internal/domain"
)

// ListPosts returns all published posts ordered by recency.
func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var data struct {
		Posts []postPayload `json:"posts"`
	}
	if err := c.do(ctx, "list posts", queryListPosts, nil, &data); err != nil {
		return nil, err
	}
	return c.transformPosts(data.Posts), nil
}

// PostBySlug returns the post addressed by slug, including its body and
// category associations. A missing post is domain.ErrNotFound.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var data struct {
		Post *postPayload `json:"post"`
	}
	if err := c.do(ctx, "post by slug", queryPostBySlug, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Post == nil {
		return nil, domain.ErrNotFound
	}
	post := c.transformPost(*data.Post)
	return &post, nil
}

// RelatedPosts returns recent posts sharing any of the given category
// slugs, excluding the current post.
func (c *Client) RelatedPosts(ctx context.Context, currentSlug string, categorySlugs []string) ([]domain.Post, error) {
	var data struct {
		Posts []postPayload `json:"posts"`
	}
	vars := map[string]any{
		"categorySlugs": categorySlugs,
		"currentSlug":   currentSlug,
		"first":         c.relatedLimit,
	}
	if err := c.do(ctx, "related posts", queryRelatedPosts, vars, &data); err != nil {
		return nil, err
	}
	return c.transformPosts(data.Posts), nil
}

// Topic returns the category addressed by slug together with its posts
// and the full category list. A missing category is domain.ErrNotFound.
func (c *Client) Topic(ctx context.Context, slug string) (*domain.Topic, error) {
	var data struct {
		Category   *categoryPayload  `json:"category"`
		Posts      []postPayload     `json:"posts"`
		Categories []categoryPayload `json:"categories"`
	}
	if err := c.do(ctx, "topic", queryTopic, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Category == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.Topic{
		Category: domain.Category{
			ID:   data.Category.ID,
			Name: data.Category.Name,
			Slug: data.Category.Slug,
		},
		Posts:     c.transformPosts(data.Posts),
		Subtopics: transformCategories(data.Categories),
	}, nil
}

// SearchPosts runs a full-text search ordered by recency, capped at the
// configured maximum.
func (c *Client) SearchPosts(ctx context.Context, query string) ([]domain.Post, error) {
	var data struct {
		Posts []postPayload `json:"posts"`
	}
	vars := map[string]any{"query": query, "first": c.searchLimit}
	if err := c.do(ctx, "search posts", querySearchPosts, vars, &data); err != nil {
		return nil, err
	}
	return c.transformPosts(data.Posts), nil
}

// InstantSearch runs the title/excerpt lookup backing the search
// widget's dropdown.
func (c *Client) InstantSearch(ctx context.Context, query string) ([]domain.Post, error) {
	var data struct {
		Posts []postPayload `json:"posts"`
	}
	vars := map[string]any{"query": query, "first": c.instantLimit}
	if err := c.do(ctx, "instant search", queryInstantSearch, vars, &data); err != nil {
		return nil, err
	}
	return c.transformPosts(data.Posts), nil
}
