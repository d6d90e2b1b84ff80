package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakflow/internal/store"
)

func TestVerseCacheEmpty(t *testing.T) {
	c := NewVerseCache(store.NewMemoryBackend())

	_, ok, err := c.Last()
	require.NoError(t, err)
	assert.False(t, ok)

	history, err := c.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestVerseCacheLastRoundTrip(t *testing.T) {
	c := NewVerseCache(store.NewMemoryBackend())
	v := DailyVerse{Verse: "Cast your cares.", Reference: "Psalm 55:22", Korean: "네 짐을.", Reflection: "평안하세요."}

	require.NoError(t, c.SaveLast(v))

	got, ok, err := c.Last()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, v, got)
}

func TestVerseHistoryDeduplicatesByReference(t *testing.T) {
	c := NewVerseCache(store.NewMemoryBackend())
	v1 := DailyVerse{Verse: "First.", Reference: "Psalm 55:22", Korean: "첫째.", Reflection: "묵상."}
	v2 := DailyVerse{Verse: "Second.", Reference: "John 3:16", Korean: "둘째.", Reflection: "묵상."}
	dup := DailyVerse{Verse: "Different text, same ref.", Reference: "Psalm 55:22", Korean: "셋째.", Reflection: "묵상."}

	require.NoError(t, c.AppendHistory(v1))
	require.NoError(t, c.AppendHistory(v2))
	require.NoError(t, c.AppendHistory(dup))

	history, err := c.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "First.", history[0].Verse, "the first entry for a reference wins")
	assert.Equal(t, "John 3:16", history[1].Reference)
}
