package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"paircode/internal/model"
	"paircode/internal/repository"
)

func newTestService() *SessionService {
	return NewSessionService(repository.NewMemorySessionRepo(), nil)
}

// recordingCache is an in-memory SessionCache that counts calls.
type recordingCache struct {
	mu      sync.Mutex
	store   map[string]*model.Session
	gets    int
	sets    int
	deletes int
	failGet bool
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: make(map[string]*model.Session)}
}

func (c *recordingCache) Set(ctx context.Context, session *model.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	cp := *session
	c.store[session.Code] = &cp
	return nil
}

func (c *recordingCache) Get(ctx context.Context, code string) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, errors.New("cache down")
	}
	session, ok := c.store[code]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (c *recordingCache) Exists(ctx context.Context, code string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[code]
	return ok, nil
}

func (c *recordingCache) Delete(ctx context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.store, code)
	return nil
}

func TestCreateSessionCodeFormat(t *testing.T) {
	svc := newTestService()

	session, err := svc.Create(context.Background(), "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	codeRe := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	if !codeRe.MatchString(session.Code) {
		t.Errorf("Code %q does not match ^[A-Z0-9]{6}$", session.Code)
	}
	if strings.ContainsAny(session.Code, "0O1I") {
		t.Errorf("Code %q contains an ambiguous character", session.Code)
	}
}

func TestCreateSessionCodesDistinct(t *testing.T) {
	svc := newTestService()

	codes := make(map[string]bool)
	for i := 0; i < 100; i++ {
		session, err := svc.Create(context.Background(), "", "", nil)
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
		if codes[session.Code] {
			t.Fatalf("Duplicate code generated: %s", session.Code)
		}
		codes[session.Code] = true
	}

	if len(codes) != 100 {
		t.Errorf("Expected 100 distinct codes, got %d", len(codes))
	}
}

func TestCreateSessionDefaults(t *testing.T) {
	svc := newTestService()

	session, err := svc.Create(context.Background(), "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if session.Language != "javascript" {
		t.Errorf("Expected default language 'javascript', got %q", session.Language)
	}
	if session.Title != DefaultTitle {
		t.Errorf("Expected default title %q, got %q", DefaultTitle, session.Title)
	}
	if !strings.Contains(session.Content, "function solution") {
		t.Errorf("Default content should use the javascript template, got %q", session.Content)
	}
	if session.CreatorID != "" {
		t.Errorf("Expected empty creator id, got %q", session.CreatorID)
	}
}

func TestCreateSessionPythonTemplate(t *testing.T) {
	svc := newTestService()

	session, err := svc.Create(context.Background(), "python", "Python Round", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if session.Language != "python" {
		t.Errorf("Expected language 'python', got %q", session.Language)
	}
	if !strings.Contains(session.Content, "def solution") {
		t.Errorf("Python content should contain 'def solution', got %q", session.Content)
	}
}

func TestCreateSessionUnknownLanguageFallsBack(t *testing.T) {
	svc := newTestService()

	session, err := svc.Create(context.Background(), "cobol", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if session.Language != "cobol" {
		t.Errorf("Language should keep its name, got %q", session.Language)
	}
	if !strings.Contains(session.Content, "function solution") {
		t.Error("Unknown language should fall back to the javascript template")
	}
}

func TestGetSessionNotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "ZZZZZZ")
	if err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdateSessionFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Create(ctx, "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	updated, err := svc.UpdateContent(ctx, session.Code, "let x = 1;")
	if err != nil {
		t.Fatalf("Failed to update content: %v", err)
	}
	if updated.Content != "let x = 1;" {
		t.Errorf("Expected updated content, got %q", updated.Content)
	}

	updated, err = svc.UpdateLanguage(ctx, session.Code, "typescript")
	if err != nil {
		t.Fatalf("Failed to update language: %v", err)
	}
	if updated.Language != "typescript" {
		t.Errorf("Expected updated language, got %q", updated.Language)
	}
	if updated.Content != "let x = 1;" {
		t.Error("Language update must not touch content")
	}

	updated, err = svc.UpdateTitle(ctx, session.Code, "Renamed")
	if err != nil {
		t.Fatalf("Failed to update title: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Expected updated title, got %q", updated.Title)
	}
}

func TestUpdateUnknownSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.UpdateContent(ctx, "ZZZZZZ", "x"); err != ErrSessionNotFound {
		t.Errorf("UpdateContent: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.UpdateLanguage(ctx, "ZZZZZZ", "python"); err != ErrSessionNotFound {
		t.Errorf("UpdateLanguage: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.UpdateTitle(ctx, "ZZZZZZ", "t"); err != ErrSessionNotFound {
		t.Errorf("UpdateTitle: expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, err := svc.Create(ctx, "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	deleted, err := svc.Delete(ctx, session.Code)
	if err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if !deleted {
		t.Error("Expected delete to report true")
	}

	if _, err := svc.Get(ctx, session.Code); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}

	deleted, err = svc.Delete(ctx, session.Code)
	if err != nil {
		t.Fatalf("Second delete errored: %v", err)
	}
	if deleted {
		t.Error("Second delete should report false")
	}
}

func TestListSessions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, _ := svc.Create(ctx, "", "", nil)
	second, _ := svc.Create(ctx, "python", "", nil)

	sessions, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}

	seen := map[string]bool{}
	for _, s := range sessions {
		seen[s.Code] = true
	}
	if !seen[first.Code] || !seen[second.Code] {
		t.Error("List is missing a created session")
	}
}

func TestCreateSessionWithCreator(t *testing.T) {
	svc := newTestService()

	session, err := svc.Create(context.Background(), "", "", &model.Creator{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if session.CreatorID != "user_alice@example.com" {
		t.Errorf("Expected creator id 'user_alice@example.com', got %q", session.CreatorID)
	}
}

func TestGetReadsThroughCache(t *testing.T) {
	repo := repository.NewMemorySessionRepo()
	c := newRecordingCache()
	svc := NewSessionService(repo, c)
	ctx := context.Background()

	session, err := svc.Create(ctx, "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Remove from the store directly; the cached copy must still serve reads
	if _, err := repo.Delete(ctx, session.Code); err != nil {
		t.Fatalf("Failed to delete from repo: %v", err)
	}

	got, err := svc.Get(ctx, session.Code)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got.Code != session.Code {
		t.Errorf("Expected session %s, got %s", session.Code, got.Code)
	}
	if c.gets == 0 {
		t.Error("Lookup should consult the cache")
	}
}

func TestGetPopulatesCacheOnMiss(t *testing.T) {
	c := newRecordingCache()
	svc := NewSessionService(repository.NewMemorySessionRepo(), c)
	ctx := context.Background()

	session, err := svc.Create(ctx, "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	c.mu.Lock()
	c.store = make(map[string]*model.Session)
	setsBefore := c.sets
	c.mu.Unlock()

	if _, err := svc.Get(ctx, session.Code); err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sets != setsBefore+1 {
		t.Errorf("Cache miss should repopulate the cache, sets went %d -> %d", setsBefore, c.sets)
	}
	if c.store[session.Code] == nil {
		t.Error("Expected the session back in the cache")
	}
}

func TestGetSurvivesCacheFailure(t *testing.T) {
	c := newRecordingCache()
	c.failGet = true
	svc := NewSessionService(repository.NewMemorySessionRepo(), c)
	ctx := context.Background()

	session, err := svc.Create(ctx, "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	got, err := svc.Get(ctx, session.Code)
	if err != nil {
		t.Fatalf("A cache failure must degrade to a store read, got %v", err)
	}
	if got.Code != session.Code {
		t.Errorf("Expected session %s, got %s", session.Code, got.Code)
	}
}

func TestDeleteEvictsCache(t *testing.T) {
	c := newRecordingCache()
	svc := NewSessionService(repository.NewMemorySessionRepo(), c)
	ctx := context.Background()

	session, err := svc.Create(ctx, "", "", nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if _, err := svc.Delete(ctx, session.Code); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if c.deletes != 1 {
		t.Errorf("Expected 1 cache eviction, got %d", c.deletes)
	}
	if _, err := svc.Get(ctx, session.Code); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestRegisterCandidate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	session, _ := svc.Create(ctx, "", "", nil)

	got, err := svc.RegisterCandidate(ctx, session.Code, "Bob", "bob@example.com")
	if err != nil {
		t.Fatalf("Failed to register candidate: %v", err)
	}
	if got.Code != session.Code {
		t.Errorf("Expected session %s, got %s", session.Code, got.Code)
	}

	if _, err := svc.RegisterCandidate(ctx, "ZZZZZZ", "Bob", "bob@example.com"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}
