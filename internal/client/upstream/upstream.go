package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/GregMSThompson/realestate-assistant/internal/errs"
	"github.com/GregMSThompson/realestate-assistant/internal/metrics"
)

const maxBodyBytes = 4 << 20

var errPayloadTooLarge = errors.New("payload too large")

// GetJSON issues a GET and decodes a 200 response body into out. Any other
// status, a transport failure, or an undecodable body comes back as an
// *errs.ExternalServiceError.
func GetJSON(ctx context.Context, hc *http.Client, service, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errs.NewTransportError(service, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return errs.NewTransportError(service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return errs.NewStatusError(service, resp.StatusCode)
	}

	body, err := readAllLimit(resp.Body, maxBodyBytes)
	if err != nil {
		return errs.NewShapeError(service, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errs.NewShapeError(service, err)
	}
	return nil
}

// Observe records the outcome of a lookup that started at started.
func Observe(service string, started time.Time, err error) {
	metrics.ObserveUpstream(service, Outcome(err), started)
}

// Outcome classifies an adapter error into a metrics label.
func Outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		return metrics.OutcomeNetwork
	}
	switch {
	case ext.StatusCode == 0:
		return metrics.OutcomeNetwork
	case ext.StatusCode != http.StatusOK:
		return metrics.OutcomeStatus
	default:
		return metrics.OutcomeShape
	}
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errPayloadTooLarge
	}
	return b, nil
}

// NewHTTPClient returns the client shared by all upstream adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
