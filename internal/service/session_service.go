package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"paircode/internal/cache"
	"paircode/internal/model"
	"paircode/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultTitle is used when a session is created without one.
const DefaultTitle = "Untitled Session"

// defaultTemplates maps a language to the starter buffer for new sessions.
var defaultTemplates = map[string]string{
	"javascript": `// Welcome to the Interview Session
// Write your JavaScript code here

function solution(input) {
  // Your implementation here
  return input;
}

// Test your solution
console.log(solution("Hello, World!"));
`,
	"typescript": `// Welcome to the Interview Session
// Write your TypeScript code here

function solution(input: string): string {
  // Your implementation here
  return input;
}

// Test your solution
console.log(solution("Hello, World!"));
`,
	"python": `# Welcome to the Interview Session
# Write your Python code here

def solution(input):
    # Your implementation here
    return input

# Test your solution
print(solution("Hello, World!"))
`,
}

// SessionService handles session lifecycle operations. It is the sole
// reader and writer of persisted session state.
type SessionService struct {
	sessionRepo  repository.SessionRepo
	sessionCache cache.SessionCache // optional, may be nil
}

// NewSessionService creates a new session service. cache may be nil when
// running without Redis (tests, single-node deployments).
func NewSessionService(sessionRepo repository.SessionRepo, sessionCache cache.SessionCache) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
	}
}

// Create generates a fresh unique code and persists a new session. An
// unknown language keeps its name but falls back to the javascript template.
func (s *SessionService) Create(ctx context.Context, language, title string, creator *model.Creator) (*model.Session, error) {
	if language == "" {
		language = "javascript"
	}
	if title == "" {
		title = DefaultTitle
	}

	code, err := s.generateSessionCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session code: %w", err)
	}

	content, ok := defaultTemplates[language]
	if !ok {
		content = defaultTemplates["javascript"]
	}

	now := time.Now().UTC()
	session := &model.Session{
		Code:      code,
		Title:     title,
		Language:  language,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if creator != nil && creator.Email != "" {
		session.CreatorID = "user_" + creator.Email
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if s.sessionCache != nil {
		if err := s.sessionCache.Set(ctx, session); err != nil {
			log.Printf("Warning: failed to cache session %s: %v", code, err)
		}
	}

	log.Printf("Created session %s", code)
	return session, nil
}

// Get retrieves a session by code, consulting the cache before the store.
// A cache failure degrades to a store read, never to an error.
func (s *SessionService) Get(ctx context.Context, code string) (*model.Session, error) {
	if s.sessionCache != nil {
		cached, err := s.sessionCache.Get(ctx, code)
		if err != nil {
			log.Printf("Warning: cache read failed for session %s: %v", code, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	session, err := s.sessionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.sessionCache != nil {
		if err := s.sessionCache.Set(ctx, session); err != nil {
			log.Printf("Warning: failed to cache session %s: %v", code, err)
		}
	}

	return session, nil
}

// UpdateContent overwrites the session buffer. Last writer wins.
func (s *SessionService) UpdateContent(ctx context.Context, code, content string) (*model.Session, error) {
	session, err := s.sessionRepo.UpdateContent(ctx, code, content)
	return s.finishUpdate(ctx, session, err)
}

// UpdateLanguage overwrites the session language. Last writer wins.
func (s *SessionService) UpdateLanguage(ctx context.Context, code, language string) (*model.Session, error) {
	session, err := s.sessionRepo.UpdateLanguage(ctx, code, language)
	return s.finishUpdate(ctx, session, err)
}

// UpdateTitle overwrites the session title. Last writer wins.
func (s *SessionService) UpdateTitle(ctx context.Context, code, title string) (*model.Session, error) {
	session, err := s.sessionRepo.UpdateTitle(ctx, code, title)
	return s.finishUpdate(ctx, session, err)
}

func (s *SessionService) finishUpdate(ctx context.Context, session *model.Session, err error) (*model.Session, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.sessionCache != nil {
		if err := s.sessionCache.Set(ctx, session); err != nil {
			log.Printf("Warning: failed to cache session %s: %v", session.Code, err)
		}
	}

	return session, nil
}

// Delete removes a session. Returns true if something was deleted; deleting
// an unknown code is not an error.
func (s *SessionService) Delete(ctx context.Context, code string) (bool, error) {
	deleted, err := s.sessionRepo.Delete(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	if s.sessionCache != nil {
		if err := s.sessionCache.Delete(ctx, code); err != nil {
			log.Printf("Warning: failed to evict session %s: %v", code, err)
		}
	}

	return deleted, nil
}

// List returns all sessions.
func (s *SessionService) List(ctx context.Context) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// RegisterCandidate records a candidate joining via the REST path.
func (s *SessionService) RegisterCandidate(ctx context.Context, code, name, email string) (*model.Session, error) {
	session, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	log.Printf("Candidate %s <%s> joined session %s", name, email, code)
	return session, nil
}

// generateSessionCode creates a 6-char code from an alphabet that excludes
// visually ambiguous characters (0/O, 1/I).
func (s *SessionService) generateSessionCode(ctx context.Context) (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		codeStr := string(code)

		// Check uniqueness against the cache first, then the store
		if s.sessionCache != nil {
			exists, err := s.sessionCache.Exists(ctx, codeStr)
			if err != nil {
				return "", err
			}
			if exists {
				continue
			}
		}

		existing, err := s.sessionRepo.GetByCode(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique session code")
}
