package hygraph

import (
	"time"

	"blog_server/internal/domain"
)

// Wire structs mirroring the content API's field selections. Every
// nullable relation is an explicit pointer so call sites never assume
// shape.

type postPayload struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Excerpt     *string           `json:"excerpt"`
	PublishedAt *string           `json:"publishedAt"`
	Content     *contentPayload   `json:"content"`
	CoverImage  *imagePayload     `json:"coverImage"`
	Categories  []categoryPayload `json:"categories"`
}

type contentPayload struct {
	HTML string `json:"html"`
}

type imagePayload struct {
	URL string `json:"url"`
}

type categoryPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *Client) transformPost(p postPayload) domain.Post {
	post := domain.Post{
		ID:      p.ID,
		Title:   p.Title,
		Slug:    p.Slug,
		Excerpt: p.Excerpt,
	}

	if p.PublishedAt != nil {
		publishedAt, err := time.Parse(time.RFC3339, *p.PublishedAt)
		if err != nil {
			c.logger.Warn("failed to parse publish date",
				"slug", p.Slug,
				"published_at", *p.PublishedAt,
			)
		} else {
			post.PublishedAt = publishedAt
		}
	}

	if p.Content != nil && p.Content.HTML != "" {
		html := p.Content.HTML
		post.BodyHTML = &html
	}

	if p.CoverImage != nil && p.CoverImage.URL != "" {
		post.CoverImage = &domain.Image{URL: p.CoverImage.URL}
	}

	for _, cat := range p.Categories {
		post.Categories = append(post.Categories, domain.Category{
			ID:   cat.ID,
			Name: cat.Name,
			Slug: cat.Slug,
		})
	}

	return post
}

func (c *Client) transformPosts(payloads []postPayload) []domain.Post {
	posts := make([]domain.Post, 0, len(payloads))
	for _, p := range payloads {
		posts = append(posts, c.transformPost(p))
	}
	return posts
}

func transformCategories(payloads []categoryPayload) []domain.Category {
	categories := make([]domain.Category, 0, len(payloads))
	for _, cat := range payloads {
		categories = append(categories, domain.Category{
			ID:   cat.ID,
			Name: cat.Name,
			Slug: cat.Slug,
		})
	}
	return categories
}
