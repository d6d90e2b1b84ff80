package tutor

import (
	"encoding/json"
	"fmt"

	"speakflow/internal/store"
)

// VerseCache persists the last successfully fetched verse and an
// accumulating history of generated verses that feeds the offline pool.
type VerseCache struct {
	backend store.Backend
}

// NewVerseCache creates a verse cache over the given backend.
func NewVerseCache(backend store.Backend) *VerseCache {
	return &VerseCache{backend: backend}
}

// Last returns the cached daily verse, or false when none is cached.
func (c *VerseCache) Last() (DailyVerse, bool, error) {
	raw, err := c.backend.Get(store.KeyDailyVerse)
	if err != nil {
		return DailyVerse{}, false, fmt.Errorf("load cached verse: %w", err)
	}
	if raw == nil {
		return DailyVerse{}, false, nil
	}
	var v DailyVerse
	if err := json.Unmarshal(raw, &v); err != nil {
		return DailyVerse{}, false, nil
	}
	return v, true, nil
}

// SaveLast caches the most recent verse.
func (c *VerseCache) SaveLast(v DailyVerse) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal verse: %w", err)
	}
	if err := c.backend.Set(store.KeyDailyVerse, raw); err != nil {
		return fmt.Errorf("cache verse: %w", err)
	}
	return nil
}

// History returns all remembered verses.
func (c *VerseCache) History() ([]DailyVerse, error) {
	raw, err := c.backend.Get(store.KeyVerseHistory)
	if err != nil {
		return nil, fmt.Errorf("load verse history: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var history []DailyVerse
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, nil
	}
	return history, nil
}

// AppendHistory remembers a verse for the offline pool, deduplicating by
// reference.
func (c *VerseCache) AppendHistory(v DailyVerse) error {
	history, err := c.History()
	if err != nil {
		return err
	}
	for _, h := range history {
		if h.Reference == v.Reference {
			return nil
		}
	}
	history = append(history, v)
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal verse history: %w", err)
	}
	if err := c.backend.Set(store.KeyVerseHistory, raw); err != nil {
		return fmt.Errorf("persist verse history: %w", err)
	}
	return nil
}
