package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modulesio/prsnt/domain"
	"github.com/modulesio/prsnt/helpers"
	"github.com/modulesio/prsnt/interfaces/mock"
	"github.com/modulesio/prsnt/service"
)

func registerHandlers(e *echo.Echo, server ServerInterface, announceMiddleware ...echo.MiddlewareFunc) {
	RegisterHandlers(e, server, announceMiddleware...)
	service.RegisterErrorHandler(e, log.NewNopLogger())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) service.ErrResponse {
	t.Helper()
	var body service.ErrResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHTTPServer_GetServers(t *testing.T) {
	ts := helpers.TestNow()

	tests := []struct {
		name           string
		lister         *mock.ListingServiceMock
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "ok",
			lister: &mock.ListingServiceMock{
				ListFunc: func(ctx context.Context) ([]domain.ServerRecord, error) {
					return []domain.ServerRecord{
						{
							Name:      "a",
							URL:       "http://1.2.3.4:80",
							Protocol:  domain.ProtocolHTTP,
							Address:   "1.2.3.4",
							Port:      80,
							Users:     []string{"x"},
							Timestamp: ts,
							Online:    true,
						},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"name":"a","url":"http://1.2.3.4:80","protocol":"http","address":"1.2.3.4","port":80,"users":["x"],"timestamp":1770811200000,"online":true}]`,
		},
		{
			name: "empty",
			lister: &mock.ListingServiceMock{
				ListFunc: func(ctx context.Context) ([]domain.ServerRecord, error) {
					return nil, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "500 store error",
			lister: &mock.ListingServiceMock{
				ListFunc: func(ctx context.Context) ([]domain.ServerRecord, error) {
					return nil, service.NewInternalServerError("Redis scan keys error", assert.AnError)
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Redis scan keys error"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			registerHandlers(e, NewHTTPServer(&mock.AnnounceCoordinatorMock{}, tt.lister, log.NewNopLogger()))
			req := httptest.NewRequest(http.MethodGet, ServersPath, nil)
			req.Header.Set(echo.HeaderOrigin, "http://example.com")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			assert.Len(t, tt.lister.ListCalls(), 1)
		})
	}
}

func TestHTTPServer_Announce(t *testing.T) {
	body := `{"name":"a","protocol":"http","address":"1.2.3.4","port":80,"visibility":"public","users":["x"]}`

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string // empty means empty body
	}{
		{
			name:           "ok",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "400 malformed",
			err:            service.NewBadParameterError("announce body does not match schema", nil),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "502 unreachable",
			err:            service.NewBadGatewayError("announced server is unreachable", assert.AnError),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "500 probe failure",
			err:            service.NewInternalServerError("dial tcp 1.2.3.4:80: connect: connection refused", assert.AnError),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "dial tcp 1.2.3.4:80: connect: connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			announcer := &mock.AnnounceCoordinatorMock{
				AnnounceFunc: func(ctx context.Context, payload []byte) error {
					return tt.err
				},
			}
			e := echo.New()
			registerHandlers(e, NewHTTPServer(announcer, &mock.ListingServiceMock{}, log.NewNopLogger()))
			req := httptest.NewRequest(http.MethodPost, AnnouncePath, strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			req.Header.Set(echo.HeaderOrigin, "http://example.com")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError == "" {
				assert.Empty(t, rec.Body.Bytes())
			} else {
				assert.Equal(t, tt.expectedError, decodeError(t, rec).Error)
			}
			assert.Equal(t, "http://example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))

			require.Len(t, announcer.AnnounceCalls(), 1)
			assert.Equal(t, body, string(announcer.AnnounceCalls()[0].Payload))
		})
	}
}

func TestHTTPServer_AnnouncePreflight(t *testing.T) {
	announcer := &mock.AnnounceCoordinatorMock{}
	e := echo.New()
	registerHandlers(e, NewHTTPServer(announcer, &mock.ListingServiceMock{}, log.NewNopLogger()))
	req := httptest.NewRequest(http.MethodOptions, AnnouncePath, nil)
	req.Header.Set(echo.HeaderOrigin, "http://example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, echo.HeaderContentType, rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
	assert.Empty(t, announcer.AnnounceCalls())
}

func TestHTTPServer_Healthz(t *testing.T) {
	e := echo.New()
	registerHandlers(e, NewHTTPServer(&mock.AnnounceCoordinatorMock{}, &mock.ListingServiceMock{}, log.NewNopLogger()))
	req := httptest.NewRequest(http.MethodGet, HealthzPath, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHTTPServer_UnknownRoute(t *testing.T) {
	e := echo.New()
	registerHandlers(e, NewHTTPServer(&mock.AnnounceCoordinatorMock{}, &mock.ListingServiceMock{}, log.NewNopLogger()))
	req := httptest.NewRequest(http.MethodGet, "/prsnt/unknown", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeError(t, rec).Error)
}

func TestAnnounceRateLimiter(t *testing.T) {
	announcer := &mock.AnnounceCoordinatorMock{}
	e := echo.New()
	registerHandlers(e, NewHTTPServer(announcer, &mock.ListingServiceMock{}, log.NewNopLogger()), AnnounceRateLimiter(0.001, 1))

	post := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, AnnouncePath, strings.NewReader(`{}`))
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, post("192.0.2.1:1000").Code)

	rec := post("192.0.2.1:1001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too Many Requests", decodeError(t, rec).Error)

	assert.Equal(t, http.StatusOK, post("192.0.2.2:1000").Code)
	assert.Len(t, announcer.AnnounceCalls(), 2)
}

func TestRegisterMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := service.NewMetrics(reg)
	store := &mock.RegistryStoreMock{}
	lister := service.NewLister(store, metrics)
	_, err := lister.List(context.Background())
	require.NoError(t, err)

	e := echo.New()
	RegisterMetricsHandler(e, reg)
	req := httptest.NewRequest(http.MethodGet, MetricsPath, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prsnt_listed_servers 0")
}

func TestNewHTTPServer_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewHTTPServer(nil, &mock.ListingServiceMock{}, log.NewNopLogger())
	})
	assert.Panics(t, func() {
		NewHTTPServer(&mock.AnnounceCoordinatorMock{}, nil, log.NewNopLogger())
	})
}
