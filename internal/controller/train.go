package controller

import (
	"context"
	"math"
	"time"

	"github.com/wandb/regviz/internal/regclient"
	"github.com/wandb/regviz/internal/scene"
	"github.com/wandb/regviz/internal/viewport"
)

// TrainCall is a validated training request.
type TrainCall struct {
	// Training is the parsed input series.
	Training viewport.Series

	service regclient.Service
	timeout time.Duration
}

// TrainReply is the service's answer to a TrainCall.
type TrainReply struct {
	call *TrainCall
	resp *regclient.TrainResponse
	err  error
}

// TrainResult is a successful training.
type TrainResult struct {
	Message string
	Metrics Metrics
}

// BeginTrain parses and validates the training input.
//
// On success the train action is AwaitingRemote until FinishTrain is
// called with the call's reply.
func (c *Controller) BeginTrain(xInput, yInput string) (*TrainCall, error) {
	if err := c.begin(ActionTrain); err != nil {
		return nil, err
	}

	xs, ys := ParseValues(xInput), ParseValues(yInput)
	var err error
	switch {
	case len(xs) == 0 || len(ys) == 0:
		err = &ValidationError{Message: MsgInvalidNumbers}
	case len(xs) != len(ys):
		err = &ValidationError{Message: MsgLengthMismatch}
	}
	if err != nil {
		c.settle(ActionTrain, err)
		return nil, err
	}

	c.transition(ActionTrain, StateAwaitingRemote)
	return &TrainCall{
		Training: viewport.Zip(xs, ys),
		service:  c.service,
		timeout:  c.timeout,
	}, nil
}

// Do sends the request to the service.
func (call *TrainCall) Do(ctx context.Context) *TrainReply {
	ctx, cancel := withTimeout(ctx, call.timeout)
	defer cancel()

	resp, err := call.service.Train(ctx, regclient.TrainRequest{
		X: call.Training.Xs(),
		Y: call.Training.Ys(),
	})
	return &TrainReply{call: call, resp: resp, err: err}
}

// FinishTrain applies a training reply.
//
// On success the training series, fitted line and metrics are replaced
// together, earlier predictions are cleared and the chart is rendered. On
// failure the chart state is unchanged and the error is a
// *regclient.RemoteError with a message to show the user.
func (c *Controller) FinishTrain(reply *TrainReply) (*TrainResult, error) {
	result, err := c.applyTrain(reply)
	if err != nil {
		c.logger.Info("controller: training failed", "error", err)
	}
	c.settle(ActionTrain, err)
	return result, err
}

func (c *Controller) applyTrain(reply *TrainReply) (*TrainResult, error) {
	if reply.err != nil {
		return nil, remoteFailure(reply.err, MsgTrainFailed)
	}

	resp := reply.resp
	switch {
	case resp == nil || len(resp.Coefficients) == 0:
		return nil, malformedReply(MsgTrainFailed, "no coefficients")
	case !finite(resp.Coefficients[0], resp.Intercept):
		return nil, malformedReply(MsgTrainFailed,
			"non-finite line y = %vx + %v", resp.Coefficients[0], resp.Intercept)
	}

	metrics := Metrics{
		Coefficient: resp.Coefficients[0],
		Intercept:   resp.Intercept,
		R2:          resp.R2Score,
		MSE:         resp.MSE,
	}
	c.state = AppState{
		Training: reply.call.Training,
		Line: &scene.FittedLine{
			Slope:     metrics.Coefficient,
			Intercept: metrics.Intercept,
		},
		Metrics: &metrics,
	}
	c.render()

	return &TrainResult{Message: resp.Message, Metrics: metrics}, nil
}

// Train runs BeginTrain, the service call and FinishTrain.
func (c *Controller) Train(
	ctx context.Context,
	xInput, yInput string,
) (*TrainResult, error) {
	call, err := c.BeginTrain(xInput, yInput)
	if err != nil {
		return nil, err
	}
	return c.FinishTrain(call.Do(ctx))
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
