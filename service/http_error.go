package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler register custom error handler.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrEntityNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrBadGateway] = http.StatusBadGateway
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError

	return errorCodeToStatusCodeMaps
}

// Announce clients only look at the status for these codes, the body stays empty.
var emptyBodyCodes = map[string]bool{
	ErrBadParameter: true,
	ErrBadGateway:   true,
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       log.WithPrefix(logger, "component", "HTTPErrorHandler"),
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler writes the response for an error returned by an echo handler or middleware.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	myErr, statusCode := h.resolve(err)

	logLevel := level.Debug
	if statusCode >= http.StatusInternalServerError {
		logLevel = level.Error
	}
	logLevel(h.logger).Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Path(),
		"status", statusCode,
		"err", err,
	)

	switch {
	case c.Request().Method == http.MethodHead, emptyBodyCodes[myErr.Code]:
		_ = c.NoContent(statusCode)
	default:
		_ = c.JSON(statusCode, ErrResponse{Error: myErr.Message})
	}
}

// resolve maps err to the MyError shown to the client and the response status.
// echo errors (unknown route, body limit, rate limit) keep their own status.
func (h *HTTPErrorHandler) resolve(err error) (*MyError, int) {
	if myErr := ToMyError(err); myErr != nil {
		return myErr, h.getStatusCode(myErr.Code)
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return NewMyError(ErrInternalServerError, "an internal server error has occurred", err), http.StatusInternalServerError
	}
	if inner, ok := he.Internal.(*echo.HTTPError); ok {
		he = inner
	}

	code := ErrInternalServerError
	var requestError *openapi3filter.RequestError
	if errors.As(he.Internal, &requestError) {
		code = ErrBadParameter
	}
	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(he.Code)
	}
	return NewMyError(code, message, err), he.Code
}

// ErrResponse from server.
type ErrResponse struct {
	Error string `json:"error"`
}
