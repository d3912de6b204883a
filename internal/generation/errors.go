package generation

import (
	"context"
	"errors"
	"net"
	"net/url"

	openai "github.com/sashabaranov/go-openai"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Classify maps a client error to the per-cell failure taxonomy. The
// mapping is intentionally coarse: the run summary only needs to
// distinguish provider outages from rate limiting from timeouts.
func Classify(err error) models.ErrorKind {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrorTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429:
			return models.ErrorRateLimited
		case apiErr.HTTPStatusCode >= 500:
			return models.ErrorProvider
		default:
			return models.ErrorProvider
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == 429 {
			return models.ErrorRateLimited
		}
		return models.ErrorProvider
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return models.ErrorTimeout
		}
		return models.ErrorNetwork
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return models.ErrorNetwork
	}

	return models.ErrorProvider
}
