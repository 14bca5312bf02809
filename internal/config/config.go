package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/realestate-assistant/pkg/helpers"
)

const (
	DefaultPrompt         = "What are the best places to invest in real estate?"
	DefaultVertexModel    = "gemini-1.5-flash"
	DefaultWeatherBaseURL = "http://api.openweathermap.org"
	DefaultAQIBaseURL     = "http://api.waqi.info"
	DefaultListingsURL    = "https://api.gemini.com/v1/properties"
)

type SecretSource string

const (
	SecretSourceEnv SecretSource = "env"
	SecretSourceGCP SecretSource = "gcp"
	SecretSourceSSM SecretSource = "ssm"
)

type SessionStore string

const (
	SessionStoreNone      SessionStore = "none"
	SessionStoreFirestore SessionStore = "firestore"
)

// Credentials are the upstream keys. Anything left empty after env loading is
// resolved from the secret source during bootstrap.
type Credentials struct {
	WeatherAPIKey string
	AQIAPIKey     string
	ListingsToken string
	GeminiAPIKey  string
}

type Config struct {
	Port        string
	ProjectID   string
	Region      string
	LogLevel    string
	VertexModel string
	// nil keeps the model default
	VertexTemperature *float32
	VertexMaxTokens   *int32
	SecretSource      SecretSource
	SecretPrefix      string
	SessionStore      SessionStore
	SessionTTL        time.Duration

	WeatherBaseURL string
	WeatherUnits   string
	AQIBaseURL     string
	ListingsURL    string
	HTTPTimeout    time.Duration
	DefaultPrompt  string

	Credentials Credentials
}

func New() *Config {
	// local development only; a missing .env is fine
	_ = godotenv.Load()

	return &Config{
		Port:              getOr("PORT", "8080"),
		ProjectID:         os.Getenv("PROJECTID"),
		Region:            getOr("REGION", "us-central1"),
		LogLevel:          os.Getenv("LOGLEVEL"),
		VertexModel:       getOr("VERTEXMODEL", DefaultVertexModel),
		VertexTemperature: getFloat32("VERTEXTEMPERATURE"),
		VertexMaxTokens:   getInt32("VERTEXMAXTOKENS"),
		SecretSource:      getSecretSource(os.Getenv("SECRETSOURCE")),
		SecretPrefix:      os.Getenv("SECRETPREFIX"),
		SessionStore:      getSessionStore(os.Getenv("SESSIONSTORE")),
		SessionTTL:        getDuration("SESSIONTTL", 24*time.Hour),

		WeatherBaseURL: getOr("WEATHERBASEURL", DefaultWeatherBaseURL),
		WeatherUnits:   os.Getenv("WEATHERUNITS"),
		AQIBaseURL:     getOr("AQIBASEURL", DefaultAQIBaseURL),
		ListingsURL:    getOr("LISTINGSURL", DefaultListingsURL),
		HTTPTimeout:    getDuration("HTTPTIMEOUT", 10*time.Second),
		DefaultPrompt:  getOr("DEFAULTPROMPT", DefaultPrompt),

		Credentials: Credentials{
			WeatherAPIKey: os.Getenv("WEATHERAPIKEY"),
			AQIAPIKey:     os.Getenv("AQIAPIKEY"),
			ListingsToken: os.Getenv("LISTINGSTOKEN"),
			GeminiAPIKey:  os.Getenv("GEMINIAPIKEY"),
		},
	}
}

func getOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getFloat32(key string) *float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 32)
	if err != nil || v < 0 {
		return nil
	}
	return helpers.Ptr(float32(v))
}

func getInt32(key string) *int32 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 32)
	if err != nil || v <= 0 {
		return nil
	}
	return helpers.Ptr(int32(v))
}

func getSecretSource(src string) SecretSource {
	switch strings.ToLower(src) {
	case "gcp":
		return SecretSourceGCP
	case "ssm":
		return SecretSourceSSM
	default: // "env"
		return SecretSourceEnv
	}
}

func getSessionStore(store string) SessionStore {
	switch strings.ToLower(store) {
	case "firestore":
		return SessionStoreFirestore
	default: // "none"
		return SessionStoreNone
	}
}
