package bootstrap

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
)

func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, errors.New("firestore session storage requires PROJECTID")
	}
	return firestore.NewClient(ctx, projectID)
}
