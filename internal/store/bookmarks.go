package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bookmark is one learner-starred sentence, keyed by its English text.
type Bookmark struct {
	ID      int64  `json:"id"`
	English string `json:"english"`
	Korean  string `json:"korean,omitempty"`
	Date    string `json:"date"`
}

// BookmarkStore persists starred sentences, newest first.
type BookmarkStore struct {
	backend Backend
	now     func() time.Time
}

// NewBookmarkStore creates a bookmark store over the given backend.
func NewBookmarkStore(backend Backend) *BookmarkStore {
	return &BookmarkStore{backend: backend, now: time.Now}
}

// List returns all bookmarks, newest first.
func (s *BookmarkStore) List() ([]Bookmark, error) {
	raw, err := s.backend.Get(KeyBookmarks)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var bookmarks []Bookmark
	if err := json.Unmarshal(raw, &bookmarks); err != nil {
		return nil, nil
	}
	return bookmarks, nil
}

// Add stars a sentence. Adding a duplicate English text is a no-op.
func (s *BookmarkStore) Add(english, korean string) (Bookmark, error) {
	bookmarks, err := s.List()
	if err != nil {
		return Bookmark{}, err
	}
	for _, b := range bookmarks {
		if b.English == english {
			return b, nil
		}
	}

	now := s.now()
	b := Bookmark{
		ID:      now.UnixMilli(),
		English: english,
		Korean:  korean,
		Date:    now.Format(time.RFC3339),
	}
	bookmarks = append([]Bookmark{b}, bookmarks...)
	if err := s.persist(bookmarks); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// Remove deletes the bookmark with the given id. Removing an unknown id is
// a no-op.
func (s *BookmarkStore) Remove(id int64) error {
	bookmarks, err := s.List()
	if err != nil {
		return err
	}
	kept := bookmarks[:0]
	for _, b := range bookmarks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return s.persist(kept)
}

// IsBookmarked reports whether the English text is starred.
func (s *BookmarkStore) IsBookmarked(english string) (bool, error) {
	bookmarks, err := s.List()
	if err != nil {
		return false, err
	}
	for _, b := range bookmarks {
		if b.English == english {
			return true, nil
		}
	}
	return false, nil
}

func (s *BookmarkStore) persist(bookmarks []Bookmark) error {
	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("marshal bookmarks: %w", err)
	}
	if err := s.backend.Set(KeyBookmarks, raw); err != nil {
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}
