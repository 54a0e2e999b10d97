package regclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/wandb/regviz/internal/httplayers"
	"github.com/wandb/regviz/internal/observability"
)

// NewRetryClient returns a retrying HTTP client configured by opts.
//
// The last response is returned once retries run out, so callers can
// read the service's error detail.
func NewRetryClient(opts ...RetryClientOption) *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	for _, opt := range opts {
		opt(retryClient)
	}
	return retryClient
}

type RetryClientOption func(rc *retryablehttp.Client)

func WithRetryClientLogger(logger *observability.CoreLogger) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		rc.Logger = slog.NewLogLogger(logger.Logger.Handler(), slog.LevelDebug)
	}
}

func WithRetryClientRetryMax(retryMax int) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		rc.RetryMax = retryMax
	}
}

// WithRetryClientRetryWait bounds the wait between attempts. Zero values
// keep the client's defaults.
func WithRetryClientRetryWait(retryWaitMin, retryWaitMax time.Duration) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		if retryWaitMin > 0 {
			rc.RetryWaitMin = retryWaitMin
		}
		if retryWaitMax > 0 {
			rc.RetryWaitMax = retryWaitMax
		}
	}
}

func WithRetryClientHTTPTimeout(timeout time.Duration) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		rc.HTTPClient.Timeout = timeout
	}
}

func WithRetryClientRetryPolicy(retryPolicy retryablehttp.CheckRetry) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		rc.CheckRetry = retryPolicy
	}
}

func WithRetryClientBackoff(backoff retryablehttp.Backoff) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		rc.Backoff = backoff
	}
}

// WithRetryClientWrappers installs HTTP layers below the retry loop, so
// each attempt passes through them.
func WithRetryClientWrappers(wrappers ...httplayers.HTTPWrapper) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		rc.HTTPClient.Transport = httplayers.WrapRoundTripper(
			rc.HTTPClient.Transport,
			httplayers.Chain(wrappers...),
		)
	}
}

// WithRetryClientTransport replaces the underlying transport.
//
// Apply it before WithRetryClientWrappers.
func WithRetryClientTransport(transport http.RoundTripper) RetryClientOption {
	return func(rc *retryablehttp.Client) {
		rc.HTTPClient.Transport = transport
	}
}
