package models

import "time"

// Session holds the last generation outcome shown to a browser session.
type Session struct {
	SessionID string    `firestore:"sessionId" json:"sessionId"`
	Prompt    string    `firestore:"prompt" json:"prompt"`
	Text      string    `firestore:"text,omitempty" json:"text,omitempty"`
	Error     string    `firestore:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}
