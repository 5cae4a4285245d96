package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/labstack/echo/v4"
)

const msgInvalidJSON = "Invalid JSON format. Please check your request body syntax."

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// ErrorHandler renders errors returned by handlers and middleware. It is installed as
// echo's HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message, name := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	body := ErrorBody{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Path:       c.Request().URL.Path,
		Method:     c.Request().Method,
		Message:    message,
		Error:      name,
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		log.Printf("writing error response: %v", writeErr)
	}
}

func classify(err error) (int, string, string) {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return statusOf(appErr.Kind), appErr.Public(), appErr.Kind.String()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		var syntaxErr *json.SyntaxError
		if errors.As(httpErr.Internal, &syntaxErr) || errors.Is(httpErr.Internal, io.ErrUnexpectedEOF) {
			return http.StatusBadRequest, msgInvalidJSON, "Bad Request - Invalid JSON"
		}
		message := http.StatusText(httpErr.Code)
		if httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, message, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, errs.InternalServerError, http.StatusText(http.StatusInternalServerError)
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.NotFound:
		return http.StatusNotFound
	case errs.Forbidden:
		return http.StatusForbidden
	case errs.BadRequest:
		return http.StatusBadRequest
	case errs.Unauthorized:
		return http.StatusUnauthorized
	case errs.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
