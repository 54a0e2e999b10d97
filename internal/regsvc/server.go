// Package regsvc is an HTTP service that fits and serves a
// single-variable linear regression model.
package regsvc

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/wandb/regviz/internal/observability"
	"github.com/wandb/regviz/internal/regclient"
)

// Error details returned to clients.
const (
	DetailLengthMismatch = "X and Y must have the same length"
	DetailTooFewPoints   = "Need at least 2 data points to train"
	DetailNotTrained     = "Model not trained yet. Please train the model first."
	DetailNoInputs       = "X must contain at least one value"
	DetailNonFinite      = "Values must be finite numbers"
	DetailInvalidBody    = "Request body must be valid JSON"
)

// maxRequestSize bounds request bodies.
const maxRequestSize = 1 << 20

type ServerParams struct {
	Store  Store
	Logger *observability.CoreLogger
}

// Server handles the regression API.
type Server struct {
	mu    sync.Mutex
	model *Model

	store   Store
	logger  *observability.CoreLogger
	metrics *metrics
}

func NewServer(params ServerParams) *Server {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	return &Server{
		store:   params.Store,
		logger:  logger,
		metrics: newMetrics(),
	}
}

// Handler returns the service's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s.metrics.instrument("root", s.handleRoot))
	mux.Handle("POST /train", s.metrics.instrument("train", s.handleTrain))
	mux.Handle("POST /predict", s.metrics.instrument("predict", s.handlePredict))
	mux.Handle("GET /model/status", s.metrics.instrument("status", s.handleStatus))
	mux.Handle("GET /metrics", s.metrics.handler())
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Regression Model API",
		"status":  "running",
	})
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req regclient.TrainRequest
	if !s.decode(w, r, &req) {
		return
	}

	switch {
	case len(req.X) != len(req.Y):
		s.writeError(w, http.StatusBadRequest, DetailLengthMismatch)
		return
	case len(req.X) < 2:
		s.writeError(w, http.StatusBadRequest, DetailTooFewPoints)
		return
	}

	model := Fit(req.X, req.Y)
	if !finite([]float64{model.Coefficient, model.Intercept, model.R2, model.MSE}) {
		s.writeError(w, http.StatusBadRequest, DetailNonFinite)
		return
	}

	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
	s.metrics.fits.Inc()

	if err := s.store.Save(model); err != nil {
		// The in-memory model still serves predictions.
		s.logger.CaptureError(err, "path", "train")
	}

	s.logger.Info("regsvc: trained model",
		"points", len(req.X),
		"coefficient", model.Coefficient,
		"intercept", model.Intercept,
		"r2", model.R2)

	s.writeJSON(w, http.StatusOK, regclient.TrainResponse{
		Message:      "Model trained successfully",
		Coefficients: []float64{model.Coefficient},
		Intercept:    model.Intercept,
		R2Score:      model.R2,
		MSE:          model.MSE,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req regclient.PredictRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.X) == 0 {
		s.writeError(w, http.StatusBadRequest, DetailNoInputs)
		return
	}

	model, err := s.loadModel()
	if err != nil {
		if !errors.Is(err, ErrNoModel) {
			s.logger.CaptureError(err, "path", "predict")
		}
		s.writeError(w, http.StatusBadRequest, DetailNotTrained)
		return
	}

	predictions := model.Predict(req.X)
	if !finite(predictions) {
		s.writeError(w, http.StatusBadRequest, DetailNonFinite)
		return
	}

	s.writeJSON(w, http.StatusOK, regclient.PredictResponse{
		Predictions: predictions,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	trained := s.model != nil
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, regclient.StatusResponse{
		Trained:     trained,
		ModelExists: s.store.Exists(),
	})
}

// loadModel returns the in-memory model, loading the saved one if needed.
func (s *Server) loadModel() (*Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil {
		return s.model, nil
	}

	model, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.logger.Info("regsvc: loaded saved model")
	s.model = model
	return model, nil
}

// decode reads a JSON body into v, writing a 422 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err := decoder.Decode(v); err != nil {
		s.logger.Debug("regsvc: invalid request body", "error", err)
		s.writeError(w, http.StatusUnprocessableEntity, DetailInvalidBody)
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, regclient.ErrorResponse{Detail: detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("regsvc: failed to write response", "error", err)
	}
}
