package airqualityclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/realestate-assistant/internal/errs"
)

func newServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIndex_Success(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"ok","data":{"aqi":42,"idx":5722}}`, func(r *http.Request) {
		require.Equal(t, "/feed/Paris/", r.URL.Path)
		require.Equal(t, "aqi-key", r.URL.Query().Get("token"))
	})

	res, err := NewAdapter(srv.URL, "aqi-key", WithHTTPClient(srv.Client())).Index(context.Background(), "Paris")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, 42.0, res.Index)
}

func TestIndex_LocationIsAPathSegment(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"ok","data":{"aqi":7}}`, func(r *http.Request) {
		require.Equal(t, "/feed/New York/", r.URL.Path)
		require.Equal(t, "/feed/New%20York/", r.URL.EscapedPath())
	})

	_, err := NewAdapter(srv.URL, "k", WithHTTPClient(srv.Client())).Index(context.Background(), "New York")
	require.NoError(t, err)
}

func TestIndex_StatusNotOKIsAbsentEvenOn200(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"error","data":"Unknown station"}`, nil)

	res, err := NewAdapter(srv.URL, "k", WithHTTPClient(srv.Client())).Index(context.Background(), "Atlantis")
	require.Nil(t, res)
	require.ErrorContains(t, err, "Unknown station")
}

func TestIndex_NoReadingIsAbsent(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"ok","data":{"aqi":"-"}}`, nil)

	res, err := NewAdapter(srv.URL, "k", WithHTTPClient(srv.Client())).Index(context.Background(), "Paris")
	require.Nil(t, res)
	require.Error(t, err)
}

func TestIndex_Non200IsAbsent(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, `{"status":"ok","data":{"aqi":42}}`, nil)

	res, err := NewAdapter(srv.URL, "k", WithHTTPClient(srv.Client())).Index(context.Background(), "Paris")
	require.Nil(t, res)

	var ext *errs.ExternalServiceError
	require.ErrorAs(t, err, &ext)
	require.Equal(t, http.StatusBadGateway, ext.StatusCode)
}

func TestIndex_MissingDataIsAbsent(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"ok"}`, nil)

	res, err := NewAdapter(srv.URL, "k", WithHTTPClient(srv.Client())).Index(context.Background(), "Paris")
	require.Nil(t, res)
	require.Error(t, err)
}
