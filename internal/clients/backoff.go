package clients

import (
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"
)

// ExponentialBackoffWithJitter is a retryablehttp.Backoff.
//
// A 429 response with a Retry-After header in seconds waits that long.
// Otherwise the wait is minWait * 2^attempt. Either way up to 25% jitter is
// added and the result is capped at maxWait.
func ExponentialBackoffWithJitter(
	minWait, maxWait time.Duration,
	attempt int,
	resp *http.Response,
) time.Duration {
	wait := time.Duration(math.Pow(2, float64(attempt)) * float64(minWait))
	if after, ok := retryAfter(resp); ok {
		wait = after
	}

	if wait >= maxWait || wait < 0 {
		return maxWait
	}

	wait += time.Duration(rand.Float64() * 0.25 * float64(wait))
	return min(wait, maxWait)
}

func retryAfter(resp *http.Response) (time.Duration, bool) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(resp.Header.Get("Retry-After"), 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}
