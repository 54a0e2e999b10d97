package httplayers

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimited delays requests so that at most perSecond are sent on average,
// with bursts of up to burst requests.
//
// Waiting respects the request's context. A request whose deadline would pass
// while waiting fails immediately.
func RateLimited(perSecond float64, burst int) HTTPWrapper {
	limiter := rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))

	return HTTPWrapperFunc(func(send HTTPDoFunc) HTTPDoFunc {
		return func(req *http.Request) (*http.Response, error) {
			if err := limiter.Wait(req.Context()); err != nil {
				return nil, URLError(req, err)
			}
			return send(req)
		}
	})
}
