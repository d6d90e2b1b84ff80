package profile

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"speakflow/internal/store"
)

// Update carries a partial profile mutation. Nil fields are left alone.
// The merge is shallow: a non-nil Settings replaces the whole struct.
type Update struct {
	Name        *string
	Avatar      *string
	Settings    *Settings
	DailyTarget *int
}

// Subscriber receives the active profile snapshot after every mutation.
type Subscriber func(Profile)

// Service is the only component that reads-modifies-writes the profile
// store. Every operation reloads the full set before mutating, so there is
// no cached staleness between calls, and a single mutex serializes the
// read-modify-persist sequence.
type Service struct {
	store  *Store
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex

	subMu  sync.Mutex
	subs   map[int]Subscriber
	nextID int
}

// NewService creates a profile service over the given backend.
func NewService(backend store.Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  NewStore(backend, logger),
		logger: logger,
		now:    time.Now,
		subs:   make(map[int]Subscriber),
	}
}

// SetClock overrides the wall clock. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
	s.store.now = now
}

// Subscribe registers a callback invoked with the new active profile after
// each mutating operation. The returned function unsubscribes; calling it
// more than once, or during a notification, is safe.
func (s *Service) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// notify runs outside the state mutex so subscribers may call back into
// the service. Persistence has already completed by the time it runs.
func (s *Service) notify(p Profile) {
	s.subMu.Lock()
	snapshot := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		snapshot = append(snapshot, fn)
	}
	s.subMu.Unlock()

	for _, fn := range snapshot {
		fn(p)
	}
}

// loadState loads the profile set and resolves the active index, repairing
// a dangling active pointer by falling back to the first profile.
// Callers must hold s.mu.
func (s *Service) loadState() ([]Profile, int, error) {
	profiles, err := s.store.Load()
	if err != nil {
		return nil, 0, err
	}
	activeID, err := s.store.LoadActiveID()
	if err != nil {
		return nil, 0, err
	}

	idx := -1
	for i := range profiles {
		if profiles[i].ID == activeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = 0
		if err := s.store.PersistActiveID(profiles[0].ID); err != nil {
			return nil, 0, err
		}
		s.logger.Warn("repaired dangling active profile pointer",
			zap.String("was", activeID),
			zap.String("now", profiles[0].ID))
	}
	return profiles, idx, nil
}

// Active returns the current learner's profile with the daily rollover
// applied, persisting the rollover when it changed anything.
func (s *Service) Active() (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Service) activeLocked() (Profile, error) {
	profiles, idx, err := s.loadState()
	if err != nil {
		return Profile{}, err
	}

	rolled := ApplyDailyRollover(profiles[idx], s.now())
	if rolled.Daily != profiles[idx].Daily {
		profiles[idx] = rolled
		if err := s.store.Persist(profiles); err != nil {
			return Profile{}, err
		}
	}
	return profiles[idx], nil
}

// List returns all profiles in creation order.
func (s *Service) List() ([]Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// mutateActive applies fn to the freshly loaded active profile, persists
// the set, and notifies subscribers with the result.
func (s *Service) mutateActive(fn func(Profile) Profile) (Profile, error) {
	s.mu.Lock()
	profiles, idx, err := s.loadState()
	if err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}

	p := ApplyDailyRollover(profiles[idx], s.now())
	p = fn(p)
	profiles[idx] = p
	if err := s.store.Persist(profiles); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}
	s.mu.Unlock()

	s.notify(p)
	return p, nil
}

// Apply merges a partial update into the active profile.
func (s *Service) Apply(u Update) (Profile, error) {
	return s.mutateActive(func(p Profile) Profile {
		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.Avatar != nil {
			p.Avatar = *u.Avatar
		}
		if u.Settings != nil {
			p.Settings = *u.Settings
		}
		if u.DailyTarget != nil && *u.DailyTarget > 0 {
			p.Daily.Target = *u.DailyTarget
		}
		return p
	})
}

// RecordSpeakingEvent advances counters, XP, and streak for one speaking
// event of the given size.
func (s *Service) RecordSpeakingEvent(amount int) (Profile, error) {
	return s.mutateActive(func(p Profile) Profile {
		return RecordSpeaking(p, amount, s.now())
	})
}

// Reset returns the active profile to its initial progression state.
func (s *Service) Reset() (Profile, error) {
	return s.mutateActive(func(p Profile) Profile {
		return ResetProgress(p, s.now())
	})
}

// SwitchActive makes the given profile current. Switching to the already
// active profile succeeds without side effects; an unknown id returns
// false with no mutation.
func (s *Service) SwitchActive(id string) (bool, error) {
	s.mu.Lock()
	profiles, idx, err := s.loadState()
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if profiles[idx].ID == id {
		s.mu.Unlock()
		return true, nil
	}

	target := -1
	for i := range profiles {
		if profiles[i].ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		s.mu.Unlock()
		return false, nil
	}

	if err := s.store.PersistActiveID(id); err != nil {
		s.mu.Unlock()
		return false, err
	}
	p := ApplyDailyRollover(profiles[target], s.now())
	if p.Daily != profiles[target].Daily {
		profiles[target] = p
		if err := s.store.Persist(profiles); err != nil {
			s.mu.Unlock()
			return false, err
		}
	}
	s.mu.Unlock()

	s.notify(p)
	return true, nil
}

// Create appends a new profile with default state and makes it active.
func (s *Service) Create(name string) (Profile, error) {
	s.mu.Lock()
	profiles, _, err := s.loadState()
	if err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}

	p := New(name, s.now())
	profiles = append(profiles, p)
	if err := s.store.Persist(profiles); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}
	if err := s.store.PersistActiveID(p.ID); err != nil {
		s.mu.Unlock()
		return Profile{}, err
	}
	s.mu.Unlock()

	s.logger.Info("created profile", zap.String("id", p.ID), zap.String("name", name))
	s.notify(p)
	return p, nil
}

// Delete removes a profile. Deleting the last remaining profile fails with
// no mutation. If the deleted profile was active, the first remaining
// profile becomes active and subscribers are notified.
func (s *Service) Delete(id string) (bool, error) {
	s.mu.Lock()
	profiles, idx, err := s.loadState()
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if len(profiles) <= 1 {
		s.mu.Unlock()
		return false, nil
	}

	target := -1
	for i := range profiles {
		if profiles[i].ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		s.mu.Unlock()
		return false, nil
	}

	wasActive := target == idx
	active := profiles[idx]
	profiles = append(profiles[:target], profiles[target+1:]...)
	if err := s.store.Persist(profiles); err != nil {
		s.mu.Unlock()
		return false, err
	}

	if wasActive {
		active = profiles[0]
		if err := s.store.PersistActiveID(active.ID); err != nil {
			s.mu.Unlock()
			return false, err
		}
	}
	s.mu.Unlock()

	s.logger.Info("deleted profile", zap.String("id", id))
	s.notify(active)
	return true, nil
}
