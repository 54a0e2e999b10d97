package httplayers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wandb/regviz/internal/observability"
)

// LogRequests logs every request at debug level once its response arrives.
func LogRequests(logger *observability.CoreLogger) HTTPWrapper {
	return HTTPWrapperFunc(func(send HTTPDoFunc) HTTPDoFunc {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := send(req)

			attrs := []any{
				"method", req.Method,
				"url", req.URL.String(),
				"duration", time.Since(start),
			}
			switch {
			case err != nil:
				logger.Debug("httplayers: request failed",
					append(attrs, "error", err)...)
			default:
				logger.Debug("httplayers: request done",
					append(attrs, slog.Int("status", resp.StatusCode))...)
			}

			return resp, err
		}
	})
}
