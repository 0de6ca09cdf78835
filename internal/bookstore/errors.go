package bookstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bookstore-client/lib/htmlutil"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrNetwork wraps transport level failures, the server was never heard from.
	ErrNetwork = errors.New("bookstore: network failure")
	// ErrAuthRequired matches any StatusError with a 401 or 403 status.
	ErrAuthRequired = errors.New("bookstore: authentication required")
)

const maxMessageLength = 200

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bookstore: %s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("bookstore: %s %s: %d %s: %s", e.Method, e.Path, e.Code, http.StatusText(e.Code), e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrAuthRequired && IsAuthStatus(e.Code)
}

func IsAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// ServerMessage returns the human readable message the server attached to a failure, if any.
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

func newStatusError(res *resty.Response) *StatusError {
	return &StatusError{
		Method:  res.Request.Method,
		Path:    res.Request.URL,
		Code:    res.StatusCode(),
		Message: serverMessage(res.Header().Get("Content-Type"), res.Body()),
	}
}

func truncate(text string) string {
	if len(text) <= maxMessageLength {
		return text
	}
	return text[:maxMessageLength] + "..."
}

// serverMessage extracts a message from a JSON error payload, an HTML error page
// or a plain text body in that order.
func serverMessage(contentType string, body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return truncate(payload.Message)
		}
		return truncate(payload.Error)
	}

	if strings.Contains(contentType, "html") {
		text, err := htmlutil.PageText(bytes.NewReader(body))
		if err == nil {
			return truncate(text)
		}
	}

	return truncate(string(body))
}
