// Package regclient talks to the remote regression service.
package regclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/wandb/regviz/internal/clients"
	"github.com/wandb/regviz/internal/httplayers"
	"github.com/wandb/regviz/internal/observability"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 1 << 20

// Service is the regression service's API.
//
// All errors returned are *RemoteError.
type Service interface {
	// Train fits a model to the points (req.X[i], req.Y[i]).
	Train(ctx context.Context, req TrainRequest) (*TrainResponse, error)

	// Predict evaluates the trained model at each req.X.
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)

	// Status reports whether the service has a trained model.
	Status(ctx context.Context) (*StatusResponse, error)
}

// HTTPServiceParams configures NewHTTPService.
type HTTPServiceParams struct {
	// BaseURL is the service root, like http://localhost:8000.
	BaseURL *url.URL

	Logger *observability.CoreLogger

	// RetryMax is the number of retries after the first attempt.
	RetryMax int

	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RequestTimeout bounds each attempt. Zero means no limit.
	RequestTimeout time.Duration

	// RequestsPerSecond limits outgoing requests if positive.
	RequestsPerSecond float64
	Burst             int

	UserAgent string

	// Transport overrides the default HTTP transport.
	Transport http.RoundTripper
}

// HTTPService is a Service over JSON and HTTP.
type HTTPService struct {
	baseURL *url.URL
	client  *retryablehttp.Client
	logger  *observability.CoreLogger
}

var _ Service = (*HTTPService)(nil)

func NewHTTPService(params HTTPServiceParams) *HTTPService {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	wrappers := []httplayers.HTTPWrapper{httplayers.LogRequests(logger)}
	if params.UserAgent != "" {
		wrappers = append(wrappers, httplayers.UserAgent(params.UserAgent))
	}
	if params.RequestsPerSecond > 0 {
		wrappers = append(wrappers,
			httplayers.RateLimited(params.RequestsPerSecond, params.Burst))
	}

	opts := []RetryClientOption{
		WithRetryClientLogger(logger),
		WithRetryClientRetryMax(params.RetryMax),
		WithRetryClientRetryPolicy(clients.RetryTransientFailures),
		WithRetryClientBackoff(clients.ExponentialBackoffWithJitter),
		WithRetryClientRetryWait(params.RetryWaitMin, params.RetryWaitMax),
		WithRetryClientHTTPTimeout(params.RequestTimeout),
	}
	if params.Transport != nil {
		opts = append(opts, WithRetryClientTransport(params.Transport))
	}
	opts = append(opts, WithRetryClientWrappers(wrappers...))

	return &HTTPService{
		baseURL: params.BaseURL,
		client:  NewRetryClient(opts...),
		logger:  logger,
	}
}

func (s *HTTPService) Train(
	ctx context.Context,
	req TrainRequest,
) (*TrainResponse, error) {
	resp := &TrainResponse{}
	if err := s.do(ctx, http.MethodPost, "train", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *HTTPService) Predict(
	ctx context.Context,
	req PredictRequest,
) (*PredictResponse, error) {
	resp := &PredictResponse{}
	if err := s.do(ctx, http.MethodPost, "predict", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *HTTPService) Status(ctx context.Context) (*StatusResponse, error) {
	resp := &StatusResponse{}
	if err := s.do(ctx, http.MethodGet, "model/status", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// do sends in as JSON (if not nil) and decodes a 2xx body into out.
func (s *HTTPService) do(
	ctx context.Context,
	method, path string,
	in, out any,
) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Err: fmt.Errorf("encoding request: %v", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx, method, s.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return &RemoteError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &RemoteError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &RemoteError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    parseDetail(data),
		}
		s.logger.Info(
			"regclient: request failed",
			"path", path,
			"status", resp.StatusCode,
			"detail", remoteErr.Message,
		)
		return remoteErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.CaptureWarn(
			"regclient: invalid response body",
			"path", path,
			"status", resp.StatusCode,
		)
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("invalid response body: %v", err),
		}
	}
	return nil
}
