package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Operations reported in errors.
const (
	OpQuestions       = "questions"
	OpRecommendations = "recommendations"
	OpHealth          = "health"
)

var userMessages = map[string]string{
	OpQuestions:       "Failed to load survey questions.",
	OpRecommendations: "Failed to calculate recommendations.",
	OpHealth:          "Backend is not reachable.",
}

// Error describes a failed backend call. Status is 0 for transport and
// decoding failures.
type Error struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": request failed"
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same action may succeed.
// Transport failures, timeouts, 408, 429 and 5xx are retryable.
func (e *Error) Retryable() bool {
	switch {
	case e.Status == 0:
		return true
	case e.Status == http.StatusRequestTimeout, e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500:
		return true
	}
	return false
}

// UserMessage is the human-readable text shown in the UI.
func (e *Error) UserMessage() string {
	if msg, ok := userMessages[e.Op]; ok {
		return msg
	}
	return "Request failed."
}

// UserMessage extracts a displayable message from any error.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
