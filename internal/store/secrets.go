package store

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

// Secrets path
// projects/{project}/secrets/{prefix}-{name}/versions/latest

type secretVersionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type gcpSecretsStore struct {
	client    secretVersionAccessor
	projectID string
	prefix    string
}

func NewGCPSecretsStore(client *secretmanager.Client, projectID, prefix string) *gcpSecretsStore {
	return newGCPSecretsStore(client, projectID, prefix)
}

func newGCPSecretsStore(client secretVersionAccessor, projectID, prefix string) *gcpSecretsStore {
	return &gcpSecretsStore{
		client:    client,
		projectID: projectID,
		prefix:    prefix,
	}
}

func (s *gcpSecretsStore) secretID(name string) string {
	if s.prefix == "" {
		return name
	}
	return fmt.Sprintf("%s-%s", s.prefix, name)
}

func (s *gcpSecretsStore) secretName(name string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, s.secretID(name))
}

func (s *gcpSecretsStore) GetSecret(ctx context.Context, name string) (string, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.secretName(name),
	})
	if err != nil {
		return "", fmt.Errorf("secretmanager: access %q: %w", s.secretID(name), err)
	}
	if res.GetPayload() == nil {
		return "", fmt.Errorf("secretmanager: secret %q has no payload", s.secretID(name))
	}
	return string(res.GetPayload().GetData()), nil
}
