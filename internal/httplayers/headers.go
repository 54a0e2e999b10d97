package httplayers

import (
	"net/http"
)

// ExtraHeaders sets the given headers on every request.
//
// Headers already present on the request are replaced.
func ExtraHeaders(headers http.Header) HTTPWrapper {
	headers = headers.Clone()
	return HTTPWrapperFunc(func(send HTTPDoFunc) HTTPDoFunc {
		return func(req *http.Request) (*http.Response, error) {
			for k, v := range headers {
				req.Header[k] = v
			}
			return send(req)
		}
	})
}

// UserAgent sets the User-Agent header on every request.
func UserAgent(agent string) HTTPWrapper {
	return ExtraHeaders(http.Header{"User-Agent": {agent}})
}
