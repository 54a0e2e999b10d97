package controller

import (
	"github.com/wandb/regviz/internal/scene"
	"github.com/wandb/regviz/internal/viewport"
)

// Action is a user-triggered request.
type Action int

const (
	ActionTrain Action = iota
	ActionPredict
)

func (a Action) String() string {
	switch a {
	case ActionTrain:
		return "train"
	case ActionPredict:
		return "predict"
	default:
		return "unknown"
	}
}

// State is the progress of one action.
//
// Every request moves Idle, Validating, then either Failed (bad input) or
// AwaitingRemote, and from there Succeeded or Failed. Succeeded and Failed
// return to Idle immediately.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAwaitingRemote
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingRemote:
		return "awaiting_remote"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Metrics describe a trained model.
type Metrics struct {
	Coefficient float64
	Intercept   float64
	R2          float64
	MSE         float64
}

// AppState is the data shown on the chart.
//
// The training series, line and metrics always come from the same
// training reply.
type AppState struct {
	Training    viewport.Series
	Predictions viewport.Series

	// Line and Metrics are nil until training succeeds.
	Line    *scene.FittedLine
	Metrics *Metrics
}

// Trained reports whether a training reply has been applied.
func (s AppState) Trained() bool {
	return s.Line != nil
}

// Scene returns the state as a renderer input.
func (s AppState) Scene(labels scene.Labels) scene.Scene {
	return scene.Scene{
		Training:    s.Training,
		Predictions: s.Predictions,
		Line:        s.Line,
		Labels:      labels,
	}
}
