package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubscriberStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	require.NoError(t, store.Add(ctx, "a@example.com"))
	require.NoError(t, store.Add(ctx, "b@example.com"))
	require.NoError(t, store.Add(ctx, "a@example.com"))

	emails, err := store.ListEmails(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a@example.com", "b@example.com"}, emails)
}

func TestSubscriberStore_ListCopies(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	require.NoError(t, store.Add(ctx, "a@example.com"))

	emails, _ := store.ListEmails(ctx)
	emails[0] = "mutated@example.com"

	again, _ := store.ListEmails(ctx)
	require.Equal(t, []string{"a@example.com"}, again)
}
