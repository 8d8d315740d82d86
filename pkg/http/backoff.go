package http

import (
	"time"
)

// BackoffConfig controls retry behavior for a request. A nil config means a
// single attempt with no retries.
type BackoffConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// InitialInterval is the wait before the first retry.
	InitialInterval time.Duration
	// Multiplier scales the interval after each retry. Values below 1 are treated as 1.
	Multiplier float64
	// MaxInterval caps the wait between retries. Zero means uncapped.
	MaxInterval time.Duration
}

// NewBackoffConfig creates a backoff configuration with default values.
func NewBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		Multiplier:      2.0,
		MaxInterval:     10 * time.Second,
	}
}

// doRequestWithBackoff executes doRequest, retrying transport errors and 5xx
// responses according to the backoff configuration. Client errors (4xx) are
// never retried.
func (hc *Client) doRequestWithBackoff(method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if backoff == nil {
		backoff = hc.defaultBackoff
	}
	if backoff == nil {
		return hc.doRequest(method, path, queryParams, headers, body, successResp, errorResp)
	}

	interval := backoff.InitialInterval
	multiplier := backoff.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	var success, errResp any
	var status int
	var err error

	for attempt := 0; ; attempt++ {
		success, errResp, status, err = hc.doRequest(method, path, queryParams, headers, body, successResp, errorResp)
		if err == nil {
			return success, errResp, status, nil
		}

		// Only transport failures and server errors are worth retrying.
		retryable := status == 0 || status >= 500
		if !retryable || attempt >= backoff.MaxRetries {
			return success, errResp, status, err
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, hc.buildURL(path), headers, "", status, "", 0, err, attempt+1, backoff.MaxRetries)
		}

		time.Sleep(interval)
		interval = time.Duration(float64(interval) * multiplier)
		if backoff.MaxInterval > 0 && interval > backoff.MaxInterval {
			interval = backoff.MaxInterval
		}
	}
}
