package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/realestate-assistant/internal/config"
)

type fakeSecrets struct {
	values map[string]string
	err    error
	asked  []string
}

func (f *fakeSecrets) GetSecret(ctx context.Context, name string) (string, error) {
	f.asked = append(f.asked, name)
	if f.err != nil {
		return "", f.err
	}
	return f.values[name], nil
}

func TestFillCredentialsOnlyFetchesMissing(t *testing.T) {
	src := &fakeSecrets{values: map[string]string{
		SecretAQIAPIKey:     "aqi",
		SecretListingsToken: "listings",
		SecretGeminiAPIKey:  "gemini",
	}}

	creds, err := fillCredentials(context.Background(), src, config.Credentials{WeatherAPIKey: "from-env"})

	require.NoError(t, err)
	require.Equal(t, config.Credentials{
		WeatherAPIKey: "from-env",
		AQIAPIKey:     "aqi",
		ListingsToken: "listings",
		GeminiAPIKey:  "gemini",
	}, creds)
	require.NotContains(t, src.asked, SecretWeatherAPIKey)
}

func TestFillCredentialsError(t *testing.T) {
	src := &fakeSecrets{err: errors.New("denied")}

	_, err := fillCredentials(context.Background(), src, config.Credentials{})

	require.ErrorContains(t, err, "weather-api-key")
}

func TestResolveCredentialsEnvSourceIsPassthrough(t *testing.T) {
	cfg := &config.Config{
		SecretSource: config.SecretSourceEnv,
		Credentials:  config.Credentials{WeatherAPIKey: "w"},
	}

	creds, err := ResolveCredentials(context.Background(), cfg)

	require.NoError(t, err)
	require.Equal(t, cfg.Credentials, creds)
}
