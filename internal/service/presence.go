package service

import (
	"sync"

	"paircode/internal/model"
)

// PresenceTracker counts and names live participants per session code.
// Purely in-memory: state is scoped to this process and rebuilt from nothing
// on restart, since the connections it describes vanish with the process.
type PresenceTracker struct {
	mu           sync.RWMutex
	participants map[string]map[string]string // code -> connectionID -> display name
}

// NewPresenceTracker creates an empty presence tracker.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		participants: make(map[string]map[string]string),
	}
}

// Join registers a connection under a code and returns the new count.
// Re-joining under the same code overwrites the display name.
func (p *PresenceTracker) Join(code, connectionID, name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.participants[code]
	if !ok {
		set = make(map[string]string)
		p.participants[code] = set
	}
	set[connectionID] = name
	return len(set)
}

// Leave removes a connection from a code's set and returns the new count.
// Empty sets are pruned.
func (p *PresenceTracker) Leave(code, connectionID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.participants[code]
	if !ok {
		return 0
	}
	delete(set, connectionID)
	if len(set) == 0 {
		delete(p.participants, code)
		return 0
	}
	return len(set)
}

// Snapshot returns a point-in-time view of a code's participants.
func (p *PresenceTracker) Snapshot(code string) model.PresenceSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	set := p.participants[code]
	participants := make([]model.Participant, 0, len(set))
	for id, name := range set {
		participants = append(participants, model.Participant{ID: id, Name: name})
	}

	return model.PresenceSnapshot{
		Count:        len(set),
		Participants: participants,
	}
}
