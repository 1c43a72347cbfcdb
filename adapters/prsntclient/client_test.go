package prsntclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/service"
)

func TestNew_Panics(t *testing.T) {
	t.Run("baseURL_empty", func(t *testing.T) {
		assert.PanicsWithValue(t, "prsntclient.client.go: baseURL is required", func() {
			New("", &http.Client{})
		})
	})
	t.Run("client_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "prsntclient.client.go: http client is required", func() {
			New("http://localhost:8000", nil)
		})
	})
}

func TestClient_Announce(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		checkErr   func(t *testing.T, err error)
	}{
		{
			name:       "ok",
			statusCode: http.StatusOK,
			checkErr:   func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:       "bad_parameter",
			statusCode: http.StatusBadRequest,
			checkErr:   func(t *testing.T, err error) { assert.True(t, service.IsBadParameterError(err)) },
		},
		{
			name:       "bad_gateway",
			statusCode: http.StatusBadGateway,
			checkErr:   func(t *testing.T, err error) { assert.True(t, service.IsBadGatewayError(err)) },
		},
		{
			name:       "internal_with_message",
			statusCode: http.StatusInternalServerError,
			body:       `{"error":"connection refused"}`,
			checkErr: func(t *testing.T, err error) {
				require.True(t, service.IsInternalServerError(err))
				assert.Equal(t, "connection refused", service.ToMyError(err).Message)
			},
		},
		{
			name:       "rate_limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error":"Too Many Requests"}`,
			checkErr: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "429")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/prsnt/announce" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				b, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(b, &got)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL, srv.Client()).Announce(context.Background(), AnnounceRequest{
				Name:       "a",
				Protocol:   domain.ProtocolHTTP,
				Address:    "1.2.3.4",
				Port:       80,
				Visibility: domain.VisibilityPublic,
			})
			tt.checkErr(t, err)
			assert.Equal(t, map[string]any{
				"name":       "a",
				"protocol":   "http",
				"address":    "1.2.3.4",
				"port":       float64(80),
				"visibility": "public",
				"users":      []any{},
			}, got)
		})
	}
}

func TestClient_Servers(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"name":"a","url":"http://1.2.3.4:80","protocol":"http","address":"1.2.3.4","port":80,"users":["x"],"timestamp":1770811200000,"online":true}]`))
		}))
		defer srv.Close()

		servers, err := New(srv.URL, srv.Client()).Servers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.ServerRecord{{
			Name:      "a",
			URL:       "http://1.2.3.4:80",
			Protocol:  domain.ProtocolHTTP,
			Address:   "1.2.3.4",
			Port:      80,
			Users:     []string{"x"},
			Timestamp: helpers.TestNow(),
			Online:    true,
		}}, servers)
	})

	t.Run("non_200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL, srv.Client()).Servers(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("invalid_json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, srv.Client()).Servers(context.Background())
		assert.Error(t, err)
	})
}
