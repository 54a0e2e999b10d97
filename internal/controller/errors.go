package controller

import (
	"errors"
	"fmt"

	"github.com/wandb/regviz/internal/regclient"
)

// User-facing messages.
const (
	MsgInvalidNumbers = "Please enter valid numbers"
	MsgLengthMismatch = "X and Y must have the same number of values"
	MsgTrainFailed    = "Training failed"
	MsgPredictFailed  = "Prediction failed"
)

// ErrBusy is returned when an action is started while the same action is
// still waiting for the service.
var ErrBusy = errors.New("controller: request already in progress")

// ValidationError is local input that cannot be sent to the service.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// remoteFailure returns err as a *regclient.RemoteError whose message is
// suitable to show the user.
func remoteFailure(err error, fallback string) *regclient.RemoteError {
	failure := &regclient.RemoteError{Err: err}

	var remoteErr *regclient.RemoteError
	if errors.As(err, &remoteErr) {
		*failure = *remoteErr
	}
	if failure.Message == "" {
		failure.Message = fallback
	}
	return failure
}

// malformedReply is a 2xx reply the controller cannot use.
func malformedReply(fallback, format string, args ...any) *regclient.RemoteError {
	return &regclient.RemoteError{
		Message: fallback,
		Err:     fmt.Errorf("controller: malformed reply: "+format, args...),
	}
}
