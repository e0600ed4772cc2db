package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx response. Detail and FieldErrors come from the
// server's problem detail body when it sent one.
type APIError struct {
	Status      int
	Title       string
	Detail      string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Title)
	default:
		return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
	}
}

// Unwrap lets callers match status classes with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return nil
}

// Message is the text to show a user: the server detail if any, otherwise fallback.
func (e *APIError) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

// UserMessage extracts display text from any error returned by Client.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	if errors.Is(err, ErrUnavailable) {
		return "Server unavailable"
	}
	return fallback
}

// FieldErrors returns per-field validation messages carried by err, if any.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.FieldErrors
	}
	return nil
}
