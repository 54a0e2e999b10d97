package regclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/regviz/internal/observabilitytest"
	"github.com/wandb/regviz/internal/regclient"
)

func newService(t *testing.T, handler http.Handler) *regclient.HTTPService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	return regclient.NewHTTPService(regclient.HTTPServiceParams{
		BaseURL:      baseURL,
		Logger:       observabilitytest.NewTestLogger(t),
		RetryMax:     2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
		UserAgent:    "regviz-test",
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestTrain_Success(t *testing.T) {
	var received regclient.TrainRequest
	service := newService(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/train", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "regviz-test", r.Header.Get("User-Agent"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			writeJSON(t, w, http.StatusOK, map[string]any{
				"message":      "Model trained successfully",
				"coefficients": []float64{2},
				"intercept":    0.0,
				"r2_score":     1.0,
				"mse":          0.0,
			})
		}))

	resp, err := service.Train(context.Background(), regclient.TrainRequest{
		X: []float64{1, 2, 3},
		Y: []float64{2, 4, 6},
	})

	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, received.X)
	assert.Equal(t, []float64{2, 4, 6}, received.Y)
	assert.Equal(t, &regclient.TrainResponse{
		Message:      "Model trained successfully",
		Coefficients: []float64{2},
		R2Score:      1,
	}, resp)
}

func TestPredict_ErrorDetail(t *testing.T) {
	var calls atomic.Int32
	service := newService(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(t, w, http.StatusBadRequest, map[string]string{
				"detail": "Model not trained yet. Please train the model first.",
			})
		}))

	_, err := service.Predict(context.Background(),
		regclient.PredictRequest{X: []float64{5}})

	var remoteErr *regclient.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadRequest, remoteErr.StatusCode)
	assert.Equal(t,
		"Model not trained yet. Please train the model first.",
		remoteErr.Error())
	assert.EqualValues(t, 1, calls.Load(), "client errors are not retried")
}

func TestPredict_ServerErrorRetriedThenReported(t *testing.T) {
	var calls atomic.Int32
	service := newService(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(t, w, http.StatusServiceUnavailable,
				map[string]string{"detail": "warming up"})
		}))

	_, err := service.Predict(context.Background(),
		regclient.PredictRequest{X: []float64{5}})

	var remoteErr *regclient.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusServiceUnavailable, remoteErr.StatusCode)
	assert.Equal(t, "warming up", remoteErr.Message)
	assert.EqualValues(t, 3, calls.Load())
}

func TestTrain_StructuredDetailIgnored(t *testing.T) {
	service := newService(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []map[string]string{{"msg": "field required"}},
			})
		}))

	_, err := service.Train(context.Background(), regclient.TrainRequest{})

	var remoteErr *regclient.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusUnprocessableEntity, remoteErr.StatusCode)
	assert.Empty(t, remoteErr.Message)
	assert.Contains(t, remoteErr.Error(), "422")
}

func TestTrain_InvalidBody(t *testing.T) {
	service := newService(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))

	_, err := service.Train(context.Background(), regclient.TrainRequest{})

	var remoteErr *regclient.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusOK, remoteErr.StatusCode)
	assert.Error(t, remoteErr.Err)
}

func TestStatus(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		trained bool
	}{
		{"trained", `{"trained": true}`, true},
		{"model exists", `{"model_exists": true}`, true},
		{"both false", `{"trained": false, "model_exists": false}`, false},
		{"either true", `{"trained": false, "model_exists": true}`, true},
		{"no fields", `{}`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := newService(t, http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodGet, r.Method)
					assert.Equal(t, "/model/status", r.URL.Path)
					_, _ = w.Write([]byte(tc.body))
				}))

			status, err := service.Status(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.trained, status.IsTrained())
		})
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	server.Close()

	service := regclient.NewHTTPService(regclient.HTTPServiceParams{
		BaseURL: baseURL,
	})

	_, err = service.Status(context.Background())

	var remoteErr *regclient.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Zero(t, remoteErr.StatusCode)
	assert.Empty(t, remoteErr.Message)
	assert.Error(t, remoteErr.Unwrap())
}

func TestCanceledContext(t *testing.T) {
	service := newService(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]bool{"trained": true})
		}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Status(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBasePath(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = w.Write([]byte(`{"predictions": [1]}`))
		}))
	defer server.Close()
	baseURL, err := url.Parse(server.URL + "/api/")
	require.NoError(t, err)

	service := regclient.NewHTTPService(regclient.HTTPServiceParams{BaseURL: baseURL})
	_, err = service.Predict(context.Background(),
		regclient.PredictRequest{X: []float64{1}})

	require.NoError(t, err)
	assert.Equal(t, "/api/predict", path)
}
