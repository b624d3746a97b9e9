package hygraph

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blog_server/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		Endpoint:     srv.URL,
		Token:        "test-token",
		Timeout:      5 * time.Second,
		InstantLimit: 5,
		SearchLimit:  20,
		RelatedLimit: 5,
	}, testLogger())
}

func TestPostBySlug_TransformsPayload(t *testing.T) {
	var gotAuth string
	var gotReq gqlRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"post": map[string]any{
					"id":          "p1",
					"title":       "Zero Trust Basics",
					"slug":        "zero-trust-basics",
					"excerpt":     "An intro.",
					"publishedAt": "2024-03-01T10:00:00Z",
					"content":     map[string]any{"html": "<p>body</p>"},
					"coverImage":  map[string]any{"url": "https://img.example.com/c.jpg"},
					"categories": []map[string]any{
						{"id": "c1", "name": "Cybersecurity", "slug": "cybersecurity"},
					},
				},
			},
		})
	})

	post, err := client.PostBySlug(context.Background(), "zero-trust-basics")

	require.NoError(t, err)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, map[string]any{"slug": "zero-trust-basics"}, gotReq.Variables)

	require.Equal(t, "Zero Trust Basics", post.Title)
	require.NotNil(t, post.Excerpt)
	require.Equal(t, "An intro.", *post.Excerpt)
	require.NotNil(t, post.BodyHTML)
	require.Equal(t, "<p>body</p>", *post.BodyHTML)
	require.NotNil(t, post.CoverImage)
	require.Equal(t, "https://img.example.com/c.jpg", post.CoverImage.URL)
	require.Len(t, post.Categories, 1)
	require.Equal(t, "cybersecurity", post.Categories[0].Slug)
	require.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), post.PublishedAt)
}

func TestPostBySlug_MissingPostIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"post":null}}`))
	})

	_, err := client.PostBySlug(context.Background(), "missing")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPosts_OptionalFieldsAbsent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"posts":[{"id":"p1","title":"Bare","slug":"bare"}]}}`))
	})

	posts, err := client.ListPosts(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Nil(t, posts[0].Excerpt)
	require.Nil(t, posts[0].CoverImage)
	require.Nil(t, posts[0].BodyHTML)
	require.True(t, posts[0].PublishedAt.IsZero())
}

func TestDo_GraphQLErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"field not allowed"}]}`))
	})

	_, err := client.ListPosts(context.Background())

	require.Error(t, err)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Contains(t, reqErr.Error(), "list posts")
}

func TestDo_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.ListPosts(context.Background())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusForbidden, reqErr.Status)
}

func TestDo_MalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.ListPosts(context.Background())

	require.Error(t, err)
}

func TestDegradedClient_FailsEveryCall(t *testing.T) {
	client := New(Config{}, testLogger())

	_, err := client.ListPosts(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = client.SearchPosts(context.Background(), "anything")
	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestSearchPosts_SendsLimit(t *testing.T) {
	var gotReq gqlRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"data":{"posts":[]}}`))
	})

	posts, err := client.SearchPosts(context.Background(), "kubernetes")

	require.NoError(t, err)
	require.Empty(t, posts)
	require.Equal(t, "kubernetes", gotReq.Variables["query"])
	require.EqualValues(t, 20, gotReq.Variables["first"])
}

func TestTopic_MissingCategoryIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"category":null,"posts":[],"categories":[]}}`))
	})

	_, err := client.Topic(context.Background(), "missing")

	require.ErrorIs(t, err, domain.ErrNotFound)
}
