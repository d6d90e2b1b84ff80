package profile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"speakflow/internal/store"
)

// Store persists the profile set and the active-profile pointer on a
// key/value backend. A store with zero profiles cannot be observed: the
// first load materializes a default profile and marks it active.
type Store struct {
	backend store.Backend
	logger  *zap.Logger
	now     func() time.Time
}

// NewStore creates a profile store over the given backend.
func NewStore(backend store.Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Load returns all profiles in creation order, materializing a default
// profile on first access and migrating any legacy single-profile record.
func (s *Store) Load() ([]Profile, error) {
	raw, err := s.backend.Get(store.KeyProfiles)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	if raw != nil {
		var profiles []Profile
		if err := json.Unmarshal(raw, &profiles); err == nil && len(profiles) > 0 {
			return profiles, nil
		}
		s.logger.Warn("profile record unreadable, rebuilding from defaults")
	}

	if profiles, ok := s.migrateLegacy(); ok {
		return profiles, nil
	}

	p := New("User", s.now())
	profiles := []Profile{p}
	if err := s.Persist(profiles); err != nil {
		return nil, err
	}
	if err := s.PersistActiveID(p.ID); err != nil {
		return nil, err
	}
	s.logger.Info("materialized default profile", zap.String("id", p.ID))
	return profiles, nil
}

// migrateLegacy promotes a pre-multi-profile record into a one-element
// profile set. The legacy key is only ever read; new state is written
// under the current keys.
func (s *Store) migrateLegacy() ([]Profile, bool) {
	raw, err := s.backend.Get(store.KeyLegacyProfile)
	if err != nil || raw == nil {
		return nil, false
	}

	var legacy Profile
	if err := json.Unmarshal(raw, &legacy); err != nil {
		s.logger.Warn("legacy profile unreadable, skipping migration", zap.Error(err))
		return nil, false
	}
	if legacy.ID == "" {
		legacy.ID = uuid.NewString()
	}

	profiles := []Profile{legacy}
	if err := s.Persist(profiles); err != nil {
		s.logger.Warn("legacy profile migration failed", zap.Error(err))
		return nil, false
	}
	if err := s.PersistActiveID(legacy.ID); err != nil {
		s.logger.Warn("legacy profile migration failed", zap.Error(err))
		return nil, false
	}
	s.logger.Info("migrated legacy profile", zap.String("id", legacy.ID))
	return profiles, true
}

// LoadActiveID returns the stored active-profile pointer, which may be
// empty or dangling; callers repair it against the loaded set.
func (s *Store) LoadActiveID() (string, error) {
	raw, err := s.backend.Get(store.KeyActiveProfile)
	if err != nil {
		return "", fmt.Errorf("load active profile id: %w", err)
	}
	return string(raw), nil
}

// Persist writes the full profile set.
func (s *Store) Persist(profiles []Profile) error {
	raw, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if err := s.backend.Set(store.KeyProfiles, raw); err != nil {
		return fmt.Errorf("persist profiles: %w", err)
	}
	return nil
}

// PersistActiveID writes the active-profile pointer.
func (s *Store) PersistActiveID(id string) error {
	if err := s.backend.Set(store.KeyActiveProfile, []byte(id)); err != nil {
		return fmt.Errorf("persist active profile id: %w", err)
	}
	return nil
}
