package bootstrap

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/GregMSThompson/realestate-assistant/internal/config"
	"github.com/GregMSThompson/realestate-assistant/internal/store"
)

// Secret names looked up in the configured secret source.
const (
	SecretWeatherAPIKey = "weather-api-key"
	SecretAQIAPIKey     = "aqi-api-key"
	SecretListingsToken = "listings-token"
	SecretGeminiAPIKey  = "gemini-api-key"
)

type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// ResolveCredentials returns cfg.Credentials with every empty value filled in
// from the configured secret source. With SECRETSOURCE=env nothing is fetched.
func ResolveCredentials(ctx context.Context, cfg *config.Config) (config.Credentials, error) {
	switch cfg.SecretSource {
	case config.SecretSourceGCP:
		client, err := secretmanager.NewClient(ctx)
		if err != nil {
			return cfg.Credentials, fmt.Errorf("secretmanager client: %w", err)
		}
		defer client.Close()
		return fillCredentials(ctx, store.NewGCPSecretsStore(client, cfg.ProjectID, cfg.SecretPrefix), cfg.Credentials)

	case config.SecretSourceSSM:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return cfg.Credentials, fmt.Errorf("aws config: %w", err)
		}
		src, err := store.NewSSMSecretsStore(ssm.NewFromConfig(awsCfg), cfg.SecretPrefix)
		if err != nil {
			return cfg.Credentials, err
		}
		return fillCredentials(ctx, src, cfg.Credentials)

	default:
		return cfg.Credentials, nil
	}
}

func fillCredentials(ctx context.Context, src secretGetter, creds config.Credentials) (config.Credentials, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{SecretWeatherAPIKey, &creds.WeatherAPIKey},
		{SecretAQIAPIKey, &creds.AQIAPIKey},
		{SecretListingsToken, &creds.ListingsToken},
		{SecretGeminiAPIKey, &creds.GeminiAPIKey},
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		v, err := src.GetSecret(ctx, f.name)
		if err != nil {
			return creds, fmt.Errorf("resolve %s: %w", f.name, err)
		}
		*f.value = v
	}
	return creds, nil
}
