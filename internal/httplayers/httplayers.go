// Package httplayers composes behavior around outgoing HTTP requests.
//
// A layer is an HTTPWrapper: it receives the next HTTPDoFunc in the chain
// and returns a new one. Layers are stacked with Chain and installed on a
// client through WrapRoundTripper.
package httplayers

import "net/http"

// HTTPDoFunc sends a request and returns its response.
type HTTPDoFunc func(req *http.Request) (*http.Response, error)

// HTTPWrapper modifies how requests are sent.
type HTTPWrapper interface {
	WrapHTTP(send HTTPDoFunc) HTTPDoFunc
}

// HTTPWrapperFunc adapts a function to the HTTPWrapper interface.
type HTTPWrapperFunc func(send HTTPDoFunc) HTTPDoFunc

// WrapHTTP implements HTTPWrapper.WrapHTTP.
func (f HTTPWrapperFunc) WrapHTTP(send HTTPDoFunc) HTTPDoFunc {
	return f(send)
}

// Chain returns a wrapper applying the given wrappers in order.
//
// The first wrapper sees the request first. Nil wrappers are skipped.
func Chain(wrappers ...HTTPWrapper) HTTPWrapper {
	return HTTPWrapperFunc(func(send HTTPDoFunc) HTTPDoFunc {
		for i := len(wrappers) - 1; i >= 0; i-- {
			if wrappers[i] != nil {
				send = wrappers[i].WrapHTTP(send)
			}
		}
		return send
	})
}
