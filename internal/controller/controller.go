// Package controller turns user actions into service calls and keeps the
// chart state they produce.
package controller

import (
	"context"
	"time"

	"github.com/wandb/regviz/internal/observability"
	"github.com/wandb/regviz/internal/regclient"
	"github.com/wandb/regviz/internal/scene"
	"github.com/wandb/regviz/internal/viewport"
)

// DefaultTimeout bounds each service call when Params.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Params configures New.
type Params struct {
	Service regclient.Service

	// Renderer draws frames after successful actions. Optional.
	Renderer *scene.Renderer

	// Surface is the frame size. Defaults to viewport.DefaultSurface.
	Surface viewport.Surface

	Labels scene.Labels

	Logger *observability.CoreLogger

	// Timeout bounds each service call. Negative disables the bound.
	Timeout time.Duration

	// OnRender receives the frame drawn after every success. Optional.
	OnRender func(scene.Frame)

	// OnTransition is called on every state change. Optional.
	OnTransition func(Action, State)
}

// Controller runs the train and predict actions.
//
// A Controller is not safe for concurrent use. The Do methods of the calls
// it hands out may run on any goroutine, since they do not touch the
// controller.
type Controller struct {
	service      regclient.Service
	renderer     *scene.Renderer
	surface      viewport.Surface
	labels       scene.Labels
	logger       *observability.CoreLogger
	timeout      time.Duration
	onRender     func(scene.Frame)
	onTransition func(Action, State)

	state  AppState
	phases [2]State
}

func New(params Params) *Controller {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	renderer := params.Renderer
	if renderer == nil {
		renderer = scene.NewRenderer(logger)
	}

	surface := params.Surface
	if surface == (viewport.Surface{}) {
		surface = viewport.DefaultSurface
	}

	timeout := params.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}

	return &Controller{
		service:      params.Service,
		renderer:     renderer,
		surface:      surface,
		labels:       params.Labels,
		logger:       logger,
		timeout:      timeout,
		onRender:     params.OnRender,
		onTransition: params.OnTransition,
	}
}

// State returns the progress of an action.
func (c *Controller) State(action Action) State {
	return c.phases[action]
}

// Busy reports whether an action is waiting for the service.
func (c *Controller) Busy(action Action) bool {
	return c.phases[action] == StateAwaitingRemote
}

// AppState returns a copy of the chart state.
func (c *Controller) AppState() AppState {
	return c.state
}

// Frame renders the current chart state.
func (c *Controller) Frame() scene.Frame {
	return c.renderer.Frame(c.surface, c.state.Scene(c.labels))
}

func (c *Controller) transition(action Action, state State) {
	c.phases[action] = state
	if c.onTransition != nil {
		c.onTransition(action, state)
	}
}

// settle records the outcome of an action and returns to Idle.
func (c *Controller) settle(action Action, err error) {
	if err != nil {
		c.transition(action, StateFailed)
	} else {
		c.transition(action, StateSucceeded)
	}
	c.transition(action, StateIdle)
}

// begin moves an idle action to Validating.
func (c *Controller) begin(action Action) error {
	if c.phases[action] != StateIdle {
		return ErrBusy
	}
	c.transition(action, StateValidating)
	return nil
}

// render draws the state and hands the frame to the render hook.
func (c *Controller) render() {
	frame := c.Frame()
	if c.onRender != nil {
		c.onRender(frame)
	}
}

// withTimeout applies the controller's bound to a service call.
func withTimeout(
	ctx context.Context,
	timeout time.Duration,
) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// CheckStatus asks the service whether it has a trained model.
func (c *Controller) CheckStatus(ctx context.Context) (bool, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.service.Status(ctx)
	if err != nil {
		c.logger.Warn("controller: status check failed", "error", err)
		return false, err
	}
	return status.IsTrained(), nil
}
