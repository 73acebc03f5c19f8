package wizardstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// Store потокобезопасное in-memory хранилище сессий мастера бронирования.
// Сессии живут ограниченное время и удаляются фоновой очисткой.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*domain.WizardSession
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New создает новое хранилище сессий с указанным временем жизни
func New(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*domain.WizardSession),
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Create создает новую сессию мастера для пользователя
func (s *Store) Create(createdBy int64) *domain.WizardSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &domain.WizardSession{
		ID:        uuid.NewString(),
		CreatedBy: createdBy,
		Step:      domain.StepCustomer,
		Draft:     domain.NewWizardDraft(),
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.sessions[session.ID] = session

	return session
}

// Get возвращает сессию по ID. Истёкшая сессия считается отсутствующей.
func (s *Store) Get(id string) (*domain.WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired(s.now()) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// Save сохраняет изменённую сессию и продлевает её время жизни
func (s *Store) Save(session *domain.WizardSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[session.ID] = session
}

// Delete удаляет сессию (после отправки или отмены мастера)
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Purge удаляет все истёкшие сессии и возвращает их количество
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
			purged++
		}
	}

	return purged
}

// Len возвращает текущее количество сессий в хранилище
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// StartJanitor запускает фоновую очистку истёкших сессий с указанным интервалом
func (s *Store) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Purge()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop останавливает фоновую очистку
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}
