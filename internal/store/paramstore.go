package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the part of *ssm.Client the parameter store uses.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Parameters are read from {prefix}/{name}.
type ssmSecretsStore struct {
	api    ssmAPI
	prefix string
}

func NewSSMSecretsStore(api ssmAPI, prefix string) (*ssmSecretsStore, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	return &ssmSecretsStore{
		api:    api,
		prefix: strings.TrimRight(strings.TrimSpace(prefix), "/"),
	}, nil
}

func (s *ssmSecretsStore) parameterName(name string) string {
	if s.prefix == "" {
		return "/" + name
	}
	return s.prefix + "/" + name
}

func (s *ssmSecretsStore) GetSecret(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}

	param := s.parameterName(name)
	withDecryption := true
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &param,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		return "", fmt.Errorf("paramstore: get parameter %q: %w", param, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.New("paramstore: parameter missing value")
	}
	return *out.Parameter.Value, nil
}
