package clients_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/regviz/internal/clients"
)

func TestRetryTransientFailures_StatusCodes(t *testing.T) {
	testCases := []struct {
		status int
		retry  bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusUnprocessableEntity, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusNotImplemented, false},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{0, true},
		{600, true},
	}

	for _, tc := range testCases {
		t.Run(strconv.Itoa(tc.status), func(t *testing.T) {
			retry, err := clients.RetryTransientFailures(
				context.Background(),
				&http.Response{StatusCode: tc.status},
				nil,
			)

			assert.NoError(t, err)
			assert.Equal(t, tc.retry, retry)
		})
	}
}

func TestRetryTransientFailures_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	retry, err := clients.RetryTransientFailures(
		ctx, &http.Response{StatusCode: http.StatusBadGateway}, nil)

	assert.False(t, retry)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryTransientFailures_ConnectionError(t *testing.T) {
	retry, err := clients.RetryTransientFailures(
		context.Background(), nil, errors.New("connection refused"))

	assert.True(t, retry)
	assert.NoError(t, err)
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	minWait := 100 * time.Millisecond
	maxWait := 2 * time.Second

	wait := clients.ExponentialBackoffWithJitter(minWait, maxWait, 2, nil)
	assert.GreaterOrEqual(t, wait, 400*time.Millisecond)
	assert.LessOrEqual(t, wait, 500*time.Millisecond)

	wait = clients.ExponentialBackoffWithJitter(minWait, maxWait, 10, nil)
	assert.Equal(t, maxWait, wait)
}

func TestExponentialBackoffWithJitter_RetryAfter(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Header:     http.Header{"Retry-After": {"1"}},
	}

	wait := clients.ExponentialBackoffWithJitter(
		10*time.Millisecond, 5*time.Second, 0, resp)

	assert.GreaterOrEqual(t, wait, time.Second)
	assert.LessOrEqual(t, wait, 1250*time.Millisecond)
}
