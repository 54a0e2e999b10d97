package regclienttest

import (
	"context"
	"net/http"
	"sync"

	"github.com/wandb/regviz/internal/regclient"
)

// FakeService is an in-memory regclient.Service that fits a line through
// the first and last training points.
//
// It is enough for UI tests that need plausible replies without a server.
type FakeService struct {
	mu        sync.Mutex
	trained   bool
	slope     float64
	intercept float64

	// Err, if set, is returned by every call.
	Err error

	// Block, if set, is waited on before every reply.
	Block chan struct{}
}

var _ regclient.Service = (*FakeService)(nil)

func (f *FakeService) wait(ctx context.Context) error {
	if f.Block == nil {
		return nil
	}
	select {
	case <-f.Block:
		return nil
	case <-ctx.Done():
		return &regclient.RemoteError{Err: ctx.Err()}
	}
}

func (f *FakeService) Train(
	ctx context.Context,
	req regclient.TrainRequest,
) (*regclient.TrainResponse, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	n := min(len(req.X), len(req.Y))
	if n < 2 {
		return nil, &regclient.RemoteError{
			StatusCode: http.StatusBadRequest,
			Message:    "Need at least 2 data points to train",
		}
	}

	dx := req.X[n-1] - req.X[0]
	f.slope = 0
	if dx != 0 {
		f.slope = (req.Y[n-1] - req.Y[0]) / dx
	}
	f.intercept = req.Y[0] - f.slope*req.X[0]
	f.trained = true

	return &regclient.TrainResponse{
		Message:      "Model trained successfully",
		Coefficients: []float64{f.slope},
		Intercept:    f.intercept,
		R2Score:      1,
	}, nil
}

func (f *FakeService) Predict(
	ctx context.Context,
	req regclient.PredictRequest,
) (*regclient.PredictResponse, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if !f.trained {
		return nil, &regclient.RemoteError{
			StatusCode: http.StatusBadRequest,
			Message:    "Model not trained yet. Please train the model first.",
		}
	}

	predictions := make([]float64, len(req.X))
	for i, x := range req.X {
		predictions[i] = f.slope*x + f.intercept
	}
	return &regclient.PredictResponse{Predictions: predictions}, nil
}

func (f *FakeService) Status(ctx context.Context) (*regclient.StatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return &regclient.StatusResponse{Trained: f.trained}, nil
}
