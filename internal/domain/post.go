package domain

import "time"

// Post is a published article as owned by the remote content API.
// The slug is its sole addressable identity in routes.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     *string
	PublishedAt time.Time
	CoverImage  *Image
	Categories  []Category
	BodyHTML    *string // pre-sanitized markup from the content API
}

type Image struct {
	URL string
}

type Category struct {
	ID   string
	Name string
	Slug string
}

// Topic is a category page's data set: the category itself, its posts
// by recency, and the full category list for sub-topic navigation.
type Topic struct {
	Category  Category
	Posts     []Post
	Subtopics []Category
}

// Subscriber is an email address submitted through the subscribe form.
type Subscriber struct {
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// PublishEvent is the payload of a "post published" webhook.
type PublishEvent struct {
	Title string
	Slug  string
}
