package httplayers

import (
	"errors"
	"net/http"
	"net/url"
)

// URLError wraps err in a *url.Error describing the request.
//
// If err already is a *url.Error, it is returned unchanged.
func URLError(req *http.Request, err error) *url.Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr
	}

	return &url.Error{
		Op:  req.Method,
		URL: req.URL.String(),
		Err: err,
	}
}
