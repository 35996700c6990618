package ws

import "encoding/json"

// Message is the WebSocket envelope format.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is the body of a session:join event.
type JoinPayload struct {
	SessionCode string `json:"sessionCode"`
	DisplayName string `json:"displayName"`
}

// ContentUpdatePayload is the body of a content:update event.
type ContentUpdatePayload struct {
	SessionCode string `json:"sessionCode"`
	Content     string `json:"content"`
}

// LanguageUpdatePayload is the body of a language:update event.
type LanguageUpdatePayload struct {
	SessionCode string `json:"sessionCode"`
	Language    string `json:"language"`
}

// TitleUpdatePayload is the body of a title:update event.
type TitleUpdatePayload struct {
	SessionCode string `json:"sessionCode"`
	Title       string `json:"title"`
}
