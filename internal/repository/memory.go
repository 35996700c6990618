package repository

import (
	"context"
	"sync"
	"time"

	"paircode/internal/model"

	"github.com/google/uuid"
)

// memorySessionRepo keeps sessions in a process-local map. Used by tests and
// storage-free deployments; selected at construction time, never by
// conditional branching in business logic.
type memorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session // code -> session
}

// NewMemorySessionRepo creates an in-memory session repository.
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{
		sessions: make(map[string]*model.Session),
	}
}

func (r *memorySessionRepo) Create(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == "" {
		session.ID = "session_" + uuid.New().String()[:8]
	}

	cp := *session
	r.sessions[session.Code] = &cp
	return nil
}

func (r *memorySessionRepo) GetByCode(ctx context.Context, code string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[code]
	if !ok {
		return nil, nil
	}

	cp := *session
	return &cp, nil
}

func (r *memorySessionRepo) UpdateContent(ctx context.Context, code, content string) (*model.Session, error) {
	return r.setField(code, func(s *model.Session) { s.Content = content })
}

func (r *memorySessionRepo) UpdateLanguage(ctx context.Context, code, language string) (*model.Session, error) {
	return r.setField(code, func(s *model.Session) { s.Language = language })
}

func (r *memorySessionRepo) UpdateTitle(ctx context.Context, code, title string) (*model.Session, error) {
	return r.setField(code, func(s *model.Session) { s.Title = title })
}

func (r *memorySessionRepo) setField(code string, set func(*model.Session)) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[code]
	if !ok {
		return nil, nil
	}

	set(session)
	session.UpdatedAt = time.Now().UTC()

	cp := *session
	return &cp, nil
}

func (r *memorySessionRepo) Delete(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[code]
	delete(r.sessions, code)
	return ok, nil
}

func (r *memorySessionRepo) List(ctx context.Context) ([]*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		cp := *s
		sessions = append(sessions, &cp)
	}

	return sessions, nil
}
