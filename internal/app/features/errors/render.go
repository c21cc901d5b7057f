// internal/app/features/errors/render.go
package errors

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure and shows the user a blocking error page with
// a way back. Handlers call it instead of writing raw 500s.
type ErrorLogger struct {
	Log    *zap.Logger
	Render viewdata.Renderer
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger, Render: viewdata.Render}
}

// LogServerError logs msg with err and renders userMsg with status 500.
// backURL "" resolves from the request.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	e.render(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs msg with err and renders userMsg with status 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, zap.Error(err), zap.String("path", r.URL.Path))
	e.render(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// LogUpstreamError handles a failed school API call. The page explains
// whether the server could not be reached or refused the request; the
// response body from the API is logged but never shown.
func (e *ErrorLogger) LogUpstreamError(w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	status := apiclient.StatusCode(err)
	e.Log.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.Int("upstream_status", status),
		zap.Bool("network", apiclient.IsNetwork(err)))

	title, userMsg := UpstreamMessage(err)
	e.render(w, r, http.StatusBadGateway, title, userMsg, backURL)
}

// UpstreamMessage returns the title and text shown for a failed API call.
func UpstreamMessage(err error) (title, msg string) {
	switch status := apiclient.StatusCode(err); {
	case apiclient.IsNetwork(err):
		return "School server unavailable", "Could not reach the school server. Check the connection and try again."
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "Not allowed", "The school server refused this request. Sign in again and retry."
	case status == http.StatusNotFound:
		return "Not found", "The school server could not find that record. It may already have been removed."
	case status >= 400 && status < 500:
		return "Request rejected", "The school server rejected the request (status " + strconv.Itoa(status) + "). Check the values and try again."
	case status >= 500:
		return "School server error", "The school server failed while handling the request (status " + strconv.Itoa(status) + "). Try again later."
	}
	return "Something went wrong", "The request could not be completed."
}

func (e *ErrorLogger) render(w http.ResponseWriter, r *http.Request, status int, title, userMsg, backURL string) {
	if backURL == "" {
		backURL = "/dashboard"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Message: userMsg,
	}
	data.BackURL = backURL
	w.WriteHeader(status)
	e.Render(w, r, "error_page", data)
}
