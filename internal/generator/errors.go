package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/agolabs/architect/internal/urls"
)

// ErrorKind represents the category of a generation failure
type ErrorKind int

const (
	// KindEmpty indicates the API returned no text
	KindEmpty ErrorKind = iota
	// KindMalformed indicates the text was not a blueprint-shaped JSON object
	KindMalformed
	// KindAPI indicates the call itself failed (transport, quota, auth)
	KindAPI
	// KindCanceled indicates the caller canceled or the deadline expired
	KindCanceled
	// KindConfig indicates the engine is missing required settings
	KindConfig
	// KindInput indicates the keyword was empty
	KindInput
)

// Messages surfaced verbatim in the error banner.
const (
	MsgEmptyResponse = "Architect failed to deploy: No signal received."
	MsgMalformed     = "Pipeline Breach: Structural failure in JSON stream."
	MsgFallback      = "Engine Error: The pipeline breach could not be contained."
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty Response"
	case KindMalformed:
		return "Malformed Output"
	case KindAPI:
		return "API Error"
	case KindCanceled:
		return "Canceled"
	case KindConfig:
		return "Configuration Error"
	case KindInput:
		return "Input Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a generation failure
type Error struct {
	Kind       ErrorKind
	Message    string
	RequestID  string
	StatusCode int // HTTP status from the API (if applicable)
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewEmptyResponseError creates an empty-response error
func NewEmptyResponseError(requestID string) *Error {
	return &Error{Kind: KindEmpty, Message: MsgEmptyResponse, RequestID: requestID}
}

// NewMalformedError creates a malformed-output error
func NewMalformedError(requestID string, err error) *Error {
	return &Error{Kind: KindMalformed, Message: MsgMalformed, RequestID: requestID, Err: err}
}

// NewAPIError wraps a failed API call, classifying context errors as cancellation
func NewAPIError(requestID string, err error) *Error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindCanceled, Message: "generation aborted", RequestID: requestID, Err: err}
	}
	genErr := &Error{Kind: KindAPI, Message: "content generation call failed", RequestID: requestID, Err: err}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		genErr.StatusCode = apiErr.Code
	}
	return genErr
}

// NewConfigError creates a configuration error
func NewConfigError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

func kindOf(err error) (ErrorKind, bool) {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return 0, false
}

// IsEmptyResponse checks if an error is an empty-response error
func IsEmptyResponse(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindEmpty
}

// IsMalformed checks if an error is a malformed-output error
func IsMalformed(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindMalformed
}

// IsCanceled checks if an error came from cancellation
func IsCanceled(err error) bool {
	k, ok := kindOf(err)
	if ok {
		return k == KindCanceled
	}
	return errors.Is(err, context.Canceled)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindConfig
}

// TroubleshootingHint returns user-friendly advice for an error
func TroubleshootingHint(err error) string {
	k, ok := kindOf(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch k {
	case KindEmpty:
		return strings.Join([]string{
			"The engine returned no content.",
			"Troubleshooting:",
			"  • Retry the generation",
			"  • Try a more specific keyword",
			"  • Check the model name in your config",
		}, "\n")
	case KindMalformed:
		return strings.Join([]string{
			"The engine returned output that is not a valid blueprint.",
			"Troubleshooting:",
			"  • Retry the generation",
			"  • Switch to a different framework",
			"  • Run with ARCHITECT_LOG_LEVEL=debug to log the raw response",
		}, "\n")
	case KindAPI:
		var genErr *Error
		errors.As(err, &genErr)
		switch {
		case genErr.StatusCode == 401 || genErr.StatusCode == 403:
			return "The API key was rejected. Check engine.api_key_env and the key's permissions.\nKeys: " + urls.GeminiAPIKeys
		case genErr.StatusCode == 404:
			return "The configured model was not found. Check engine.model in config.yaml.\nModels: " + urls.GeminiModels
		case genErr.StatusCode == 429:
			return "The API quota is exhausted. Wait and retry, or check your plan limits.\nLimits: " + urls.GeminiRateLimits
		}
		return strings.Join([]string{
			"The Gemini API call failed.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • Verify the API key has access to the configured model",
			"  • Check your API quota",
		}, "\n")
	case KindConfig:
		return strings.Join([]string{
			"The engine is not configured.",
			"Troubleshooting:",
			"  • Export API_KEY or GEMINI_API_KEY",
			"  • Or set engine.api_key_env in config.yaml",
			"  • Create a key at " + urls.GeminiAPIKeys,
		}, "\n")
	case KindInput:
		return "Enter a non-empty keyword."
	default:
		return "Generation was aborted."
	}
}

// ShortMessage returns the banner text for an error
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}
	var genErr *Error
	if !errors.As(err, &genErr) {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return MsgFallback
	}

	switch genErr.Kind {
	case KindEmpty:
		return MsgEmptyResponse
	case KindMalformed:
		return MsgMalformed
	case KindAPI:
		if genErr.Err != nil {
			return "Engine Error: " + genErr.Err.Error()
		}
		return MsgFallback
	default:
		if genErr.Message != "" {
			return genErr.Message
		}
		return MsgFallback
	}
}
