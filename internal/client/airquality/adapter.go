package airqualityclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/realestate-assistant/internal/client/upstream"
	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/errs"
)

const (
	service  = "aqi"
	statusOK = "ok"
)

// feedResponse.Data is an object on success and an error string otherwise.
type feedResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type feedData struct {
	// "-" when the station has no reading
	AQI json.RawMessage `json:"aqi"`
}

type Adapter struct {
	http    *http.Client
	baseURL string
	token   string
}

type Option func(*Adapter)

func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		a.http = hc
	}
}

func NewAdapter(baseURL, token string, opts ...Option) *Adapter {
	a := &Adapter{
		http:    http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Index fetches the air quality index for location. The location is sent as
// the feed's path segment as-is; the provider expects a city or station name
// there and answers with a non-"ok" status for anything it can't resolve.
func (a *Adapter) Index(ctx context.Context, location string) (*dto.AirQualityResult, error) {
	started := time.Now()
	res, err := a.index(ctx, location)
	upstream.Observe(service, started, err)
	return res, err
}

func (a *Adapter) index(ctx context.Context, location string) (*dto.AirQualityResult, error) {
	var body feedResponse
	if err := upstream.GetJSON(ctx, a.http, service, a.feedURL(location), nil, &body); err != nil {
		return nil, err
	}

	if body.Status != statusOK {
		return nil, errs.NewShapeError(service, fmt.Errorf("api status %q: %s", body.Status, string(body.Data)))
	}

	var data feedData
	if err := json.Unmarshal(body.Data, &data); err != nil {
		return nil, errs.NewShapeError(service, err)
	}
	var index float64
	if err := json.Unmarshal(data.AQI, &index); err != nil {
		return nil, errs.NewShapeError(service, fmt.Errorf("aqi %s is not a number", string(data.AQI)))
	}

	return &dto.AirQualityResult{Index: index}, nil
}

func (a *Adapter) feedURL(location string) string {
	return fmt.Sprintf("%s/feed/%s/?token=%s", a.baseURL, url.PathEscape(location), url.QueryEscape(a.token))
}
