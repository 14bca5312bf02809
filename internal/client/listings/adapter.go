package listingsclient

import (
	"context"
	"net/http"
	"time"

	"github.com/GregMSThompson/realestate-assistant/internal/client/upstream"
	"github.com/GregMSThompson/realestate-assistant/internal/dto"
)

const service = "listings"

// Adapter reads the property feed. The endpoint takes no search parameters,
// so the same feed comes back whatever location the user typed.
type Adapter struct {
	http  *http.Client
	url   string
	token string
}

type Option func(*Adapter)

func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		a.http = hc
	}
}

func NewAdapter(feedURL, token string, opts ...Option) *Adapter {
	a := &Adapter{
		http:  http.DefaultClient,
		url:   feedURL,
		token: token,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// List returns the feed's records in response order. On any failure it
// returns an empty slice along with the error.
func (a *Adapter) List(ctx context.Context) ([]dto.PropertyRecord, error) {
	started := time.Now()
	recs, err := a.list(ctx)
	upstream.Observe(service, started, err)
	if err != nil {
		return []dto.PropertyRecord{}, err
	}
	return recs, nil
}

func (a *Adapter) list(ctx context.Context) ([]dto.PropertyRecord, error) {
	header := http.Header{}
	if a.token != "" {
		header.Set("Authorization", "Bearer "+a.token)
	}

	var recs []dto.PropertyRecord
	if err := upstream.GetJSON(ctx, a.http, service, a.url, header, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []dto.PropertyRecord{}
	}
	return recs, nil
}
