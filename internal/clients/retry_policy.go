// Package clients holds retry policies for the HTTP clients.
package clients

import (
	"context"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// RetryTransientFailures retries connection problems, rate limiting and
// server errors.
//
// Client errors are never retried: the regression service answers 4xx only
// for requests that would fail the same way again, such as mismatched
// inputs or predicting before training.
func RetryTransientFailures(
	ctx context.Context,
	resp *http.Response,
	err error,
) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// retryablehttp knows which transport errors are permanent (bad scheme,
	// TLS verification, redirect loops) by matching their messages.
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, nil
	case resp.StatusCode == http.StatusNotImplemented:
		return false, nil
	case resp.StatusCode == 0 || resp.StatusCode >= 600:
		return true, nil
	default:
		return resp.StatusCode >= 500, nil
	}
}
