package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors forming the uniform taxonomy surfaced to callers. Wrapped
// errors carry the provider name, HTTP status, and vendor message.
var (
	// ErrNotConfigured is returned when the selected provider has no API key.
	ErrNotConfigured = errors.New("provider: API key not configured")

	// ErrUnsupportedProvider is returned for provider names outside the known set.
	ErrUnsupportedProvider = errors.New("provider: unsupported provider")

	// ErrAuth covers vendor 401/403 responses.
	ErrAuth = errors.New("provider: authentication failed")

	// ErrRateLimited covers vendor 429 responses.
	ErrRateLimited = errors.New("provider: rate limited")

	// ErrInvalidModel covers vendor rejections of the requested model.
	ErrInvalidModel = errors.New("provider: invalid model")

	// ErrUnavailable covers vendor 5xx responses and transport failures.
	ErrUnavailable = errors.New("provider: upstream unavailable")
)

// classifyStatus maps a vendor HTTP error response to the uniform taxonomy.
// message is the vendor's own error text, kept for operators.
func classifyStatus(provider string, status int, message string) error {
	var kind error
	switch {
	case status == 401 || status == 403:
		kind = ErrAuth
	case status == 429:
		kind = ErrRateLimited
	case status == 404:
		kind = ErrInvalidModel
	case status == 400 && strings.Contains(strings.ToLower(message), "model"):
		// OpenAI-compatible endpoints reject unknown models with 400.
		kind = ErrInvalidModel
	case status >= 500:
		kind = ErrUnavailable
	default:
		kind = ErrUnavailable
	}
	if message == "" {
		return fmt.Errorf("%w: %s http %d", kind, provider, status)
	}
	return fmt.Errorf("%w: %s http %d: %s", kind, provider, status, message)
}
