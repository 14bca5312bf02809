package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/realestate-assistant/internal/errs"
	"github.com/GregMSThompson/realestate-assistant/internal/models"
)

type sessionStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
	clockNow   func() time.Time
}

func NewSessionStore(client *firestore.Client) *sessionStore {
	return &sessionStore{
		client:     client,
		collection: client.Collection("sessions"),
		clockNow:   time.Now,
	}
}

func (s *sessionStore) SaveSession(ctx context.Context, session models.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.clockNow()
	}

	_, err := s.collection.Doc(session.SessionID).Set(ctx, session)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to save session", err)
	}
	return nil
}

// GetSession returns a NotFoundError for unknown or expired sessions.
func (s *sessionStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	doc, err := s.collection.Doc(sessionID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, errs.NewNotFoundError("session not found")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read session", err)
	}

	var session models.Session
	if err := doc.DataTo(&session); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse session data", err)
	}
	if !session.ExpiresAt.IsZero() && s.clockNow().After(session.ExpiresAt) {
		return nil, errs.NewNotFoundError("session expired")
	}
	return &session, nil
}
