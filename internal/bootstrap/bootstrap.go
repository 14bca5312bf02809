package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"cloud.google.com/go/firestore"

	airqualityclient "github.com/GregMSThompson/realestate-assistant/internal/client/airquality"
	listingsclient "github.com/GregMSThompson/realestate-assistant/internal/client/listings"
	"github.com/GregMSThompson/realestate-assistant/internal/client/upstream"
	vertexclient "github.com/GregMSThompson/realestate-assistant/internal/client/vertex"
	weatherclient "github.com/GregMSThompson/realestate-assistant/internal/client/weather"
	"github.com/GregMSThompson/realestate-assistant/internal/config"
	"github.com/GregMSThompson/realestate-assistant/pkg/logger"
)

type Bootstrap struct {
	Log               *slog.Logger
	HTTPClient        *http.Client
	Firestore         *firestore.Client
	VertexAdapter     *vertexclient.Adapter
	WeatherAdapter    *weatherclient.Adapter
	AirQualityAdapter *airqualityclient.Adapter
	ListingsAdapter   *listingsclient.Adapter
}

// Run wires every process-wide dependency. Text generation is optional: when
// the Vertex client can't be created the service still renders pages and
// reports generation as not configured.
func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	slog.SetDefault(bs.Log)

	creds, err := ResolveCredentials(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}

	bs.HTTPClient = upstream.NewHTTPClient(cfg.HTTPTimeout)
	bs.WeatherAdapter = weatherclient.NewAdapter(cfg.WeatherBaseURL, creds.WeatherAPIKey,
		weatherclient.WithHTTPClient(bs.HTTPClient),
		weatherclient.WithUnits(cfg.WeatherUnits))
	bs.AirQualityAdapter = airqualityclient.NewAdapter(cfg.AQIBaseURL, creds.AQIAPIKey,
		airqualityclient.WithHTTPClient(bs.HTTPClient))
	bs.ListingsAdapter = listingsclient.NewAdapter(cfg.ListingsURL, creds.ListingsToken,
		listingsclient.WithHTTPClient(bs.HTTPClient))

	bs.VertexAdapter, err = vertexclient.NewAdapter(applicationCtx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel, creds.GeminiAPIKey)
	if err != nil {
		bs.Log.Warn("text generation disabled", "error", err)
		bs.VertexAdapter = nil
	}

	if cfg.SessionStore == config.SessionStoreFirestore {
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	}

	return bs, nil
}

func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.VertexAdapter != nil {
		errList = append(errList, bs.VertexAdapter.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	return errors.Join(errList...)
}
