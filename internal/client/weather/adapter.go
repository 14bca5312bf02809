package weatherclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/realestate-assistant/internal/client/upstream"
	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/errs"
)

const service = "weather"

type currentResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

type Adapter struct {
	http    *http.Client
	baseURL string
	apiKey  string
	units   string
}

type Option func(*Adapter)

func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		a.http = hc
	}
}

// WithUnits sets the provider's units parameter ("metric", "imperial").
// Without it the provider answers in its own default units.
func WithUnits(units string) Option {
	return func(a *Adapter) {
		a.units = strings.TrimSpace(units)
	}
}

func NewAdapter(baseURL, apiKey string, opts ...Option) *Adapter {
	a := &Adapter{
		http:    http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Current fetches current conditions for location. A nil result means the
// lookup failed; err says why.
func (a *Adapter) Current(ctx context.Context, location string) (*dto.WeatherResult, error) {
	started := time.Now()
	res, err := a.current(ctx, location)
	upstream.Observe(service, started, err)
	return res, err
}

func (a *Adapter) current(ctx context.Context, location string) (*dto.WeatherResult, error) {
	var body currentResponse
	if err := upstream.GetJSON(ctx, a.http, service, a.currentURL(location), nil, &body); err != nil {
		return nil, err
	}

	if len(body.Weather) == 0 || body.Weather[0].Description == "" {
		return nil, errs.NewShapeError(service, errors.New("missing weather description"))
	}
	if body.Main == nil || body.Main.Temp == nil {
		return nil, errs.NewShapeError(service, errors.New("missing main.temp"))
	}

	return &dto.WeatherResult{
		Description: body.Weather[0].Description,
		Temperature: *body.Main.Temp,
	}, nil
}

func (a *Adapter) currentURL(location string) string {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", a.apiKey)
	if a.units != "" {
		q.Set("units", a.units)
	}
	return a.baseURL + "/data/2.5/weather?" + q.Encode()
}
