package model

import "time"

// Session is the durable session record, addressed by its public code.
type Session struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Code      string    `json:"code" bson:"code"`
	Title     string    `json:"title" bson:"title"`
	Language  string    `json:"language" bson:"language"`
	Content   string    `json:"content" bson:"content"`
	CreatorID string    `json:"creatorId,omitempty" bson:"creatorId,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Participant is a live connection attached to a session. Ephemeral, never persisted.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PresenceSnapshot is a point-in-time view of a session's live participants.
type PresenceSnapshot struct {
	Count        int           `json:"participantCount"`
	Participants []Participant `json:"participants"`
}

// SessionView is the wire shape for a session: the durable record plus the
// live presence snapshot, assembled at the serialization boundary.
type SessionView struct {
	ID               string        `json:"id"`
	Code             string        `json:"code"`
	Title            string        `json:"title"`
	Language         string        `json:"language"`
	Content          string        `json:"content"`
	ParticipantCount int           `json:"participantCount"`
	Participants     []Participant `json:"participants"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// NewSessionView combines a session with a presence snapshot.
func NewSessionView(s *Session, snap PresenceSnapshot) *SessionView {
	return &SessionView{
		ID:               s.ID,
		Code:             s.Code,
		Title:            s.Title,
		Language:         s.Language,
		Content:          s.Content,
		ParticipantCount: snap.Count,
		Participants:     snap.Participants,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// Creator identifies who created a session, when provided.
type Creator struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
