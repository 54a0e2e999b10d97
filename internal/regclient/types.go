package regclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// TrainRequest is the body of POST /train.
type TrainRequest struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// TrainResponse is the success body of POST /train.
type TrainResponse struct {
	Message      string    `json:"message,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	R2Score      float64   `json:"r2_score"`
	MSE          float64   `json:"mse"`
}

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	X []float64 `json:"x"`
}

// PredictResponse is the success body of POST /predict.
//
// Predictions are positionally aligned with the request's X.
type PredictResponse struct {
	Predictions []float64 `json:"predictions"`
}

// StatusResponse is the body of GET /model/status.
//
// Services report the trained state under either field name.
type StatusResponse struct {
	Trained     bool `json:"trained"`
	ModelExists bool `json:"model_exists"`
}

// IsTrained reports whether the service has a model.
func (s *StatusResponse) IsTrained() bool {
	return s != nil && (s.Trained || s.ModelExists)
}

// ErrorResponse is the optional body of a failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RemoteError is a failed call to the regression service.
//
// StatusCode is zero if no response arrived. Message is the service's
// detail, if it sent one.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("regclient: %v", e.Err)
	default:
		return fmt.Sprintf(
			"regclient: unexpected status %d %s",
			e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// parseDetail extracts the detail message from an error body.
//
// Only string details are used. Validation failures may carry a structured
// detail, which is ignored.
func parseDetail(body []byte) string {
	var raw struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &raw); err != nil || raw.Detail == nil {
		return ""
	}

	var detail string
	if err := json.Unmarshal(raw.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
