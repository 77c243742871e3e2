package challenge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaleva/ornata/internal/logging"
)

func TestDisabled_AlwaysEmpty(t *testing.T) {
	require.Equal(t, "", Disabled{}.Token(context.Background(), "signin"))
}

func TestNew_SelectsImplementation(t *testing.T) {
	p := New("", "", logging.NopLogger{})
	require.IsType(t, Disabled{}, p)

	p = New("http://challenge.local", "key", logging.NopLogger{})
	require.IsType(t, &HTTPProvider{}, p)
}

func TestHTTPProvider_ReturnsToken(t *testing.T) {
	var gotAction, gotSiteKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotAction = req["action"]
		gotSiteKey = req["siteKey"]
		w.Write([]byte(`{"token":"proof-1"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "site-key", logging.NopLogger{})
	token := p.Token(context.Background(), "checkout")

	require.Equal(t, "proof-1", token)
	require.Equal(t, "checkout", gotAction)
	require.Equal(t, "site-key", gotSiteKey)
}

func TestHTTPProvider_FailsOpen(t *testing.T) {
	t.Run("service unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		p := NewHTTPProvider(srv.URL, "", logging.NopLogger{})
		require.Equal(t, "", p.Token(context.Background(), "signin"))
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		p := NewHTTPProvider(srv.URL, "", logging.NopLogger{})
		require.Equal(t, "", p.Token(context.Background(), "signin"))
	})

	t.Run("undecodable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		p := NewHTTPProvider(srv.URL, "", logging.NopLogger{})
		require.Equal(t, "", p.Token(context.Background(), "signup"))
	})
}
