package httplayers

import "net/http"

// WrapRoundTripper applies an HTTPWrapper to a RoundTripper.
//
// Wrappers may inspect responses, which the RoundTripper contract forbids.
// This is still the only hook retryablehttp.Client offers, through its
// underlying Transport.
func WrapRoundTripper(
	rt http.RoundTripper,
	wrapper HTTPWrapper,
) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return wrappedRoundTripper{wrapper.WrapHTTP(rt.RoundTrip)}
}

type wrappedRoundTripper struct {
	fn HTTPDoFunc
}

// RoundTrip implements http.RoundTripper.RoundTrip.
func (rt wrappedRoundTripper) RoundTrip(
	req *http.Request,
) (*http.Response, error) {
	return rt.fn(req)
}
