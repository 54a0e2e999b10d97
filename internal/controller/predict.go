package controller

import (
	"context"
	"time"

	"github.com/wandb/regviz/internal/regclient"
	"github.com/wandb/regviz/internal/viewport"
)

// PredictCall is a validated prediction request.
type PredictCall struct {
	X []float64

	service regclient.Service
	timeout time.Duration
}

// PredictReply is the service's answer to a PredictCall.
type PredictReply struct {
	call *PredictCall
	resp *regclient.PredictResponse
	err  error
}

// PredictResult is a successful prediction.
type PredictResult struct {
	Predictions viewport.Series
}

// BeginPredict parses and validates the prediction input.
func (c *Controller) BeginPredict(xInput string) (*PredictCall, error) {
	if err := c.begin(ActionPredict); err != nil {
		return nil, err
	}

	xs := ParseValues(xInput)
	if len(xs) == 0 {
		err := &ValidationError{Message: MsgInvalidNumbers}
		c.settle(ActionPredict, err)
		return nil, err
	}

	c.transition(ActionPredict, StateAwaitingRemote)
	return &PredictCall{X: xs, service: c.service, timeout: c.timeout}, nil
}

// Do sends the request to the service.
func (call *PredictCall) Do(ctx context.Context) *PredictReply {
	ctx, cancel := withTimeout(ctx, call.timeout)
	defer cancel()

	resp, err := call.service.Predict(ctx, regclient.PredictRequest{X: call.X})
	return &PredictReply{call: call, resp: resp, err: err}
}

// FinishPredict applies a prediction reply.
//
// On success only the prediction series is replaced and the chart is
// rendered. On failure nothing changes.
func (c *Controller) FinishPredict(reply *PredictReply) (*PredictResult, error) {
	result, err := c.applyPredict(reply)
	if err != nil {
		c.logger.Info("controller: prediction failed", "error", err)
	}
	c.settle(ActionPredict, err)
	return result, err
}

func (c *Controller) applyPredict(reply *PredictReply) (*PredictResult, error) {
	if reply.err != nil {
		return nil, remoteFailure(reply.err, MsgPredictFailed)
	}

	resp := reply.resp
	switch {
	case resp == nil || len(resp.Predictions) != len(reply.call.X):
		got := 0
		if resp != nil {
			got = len(resp.Predictions)
		}
		return nil, malformedReply(MsgPredictFailed,
			"%d predictions for %d inputs", got, len(reply.call.X))
	case !finite(resp.Predictions...):
		return nil, malformedReply(MsgPredictFailed, "non-finite prediction")
	}

	c.state.Predictions = viewport.Zip(reply.call.X, resp.Predictions)
	c.render()

	return &PredictResult{Predictions: c.state.Predictions}, nil
}

// Predict runs BeginPredict, the service call and FinishPredict.
func (c *Controller) Predict(
	ctx context.Context,
	xInput string,
) (*PredictResult, error) {
	call, err := c.BeginPredict(xInput)
	if err != nil {
		return nil, err
	}
	return c.FinishPredict(call.Do(ctx))
}
