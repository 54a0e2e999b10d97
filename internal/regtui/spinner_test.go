package regtui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/regviz/internal/controller"
	"github.com/wandb/regviz/internal/observabilitytest"
	"github.com/wandb/regviz/internal/regclienttest"
)

func TestBeginPredict_SharesRunningSpinner(t *testing.T) {
	logger := observabilitytest.NewTestLogger(t)
	m := New(Params{
		Controller: controller.New(controller.Params{
			Service: &regclienttest.FakeService{Err: errors.New("offline")},
			Logger:  logger,
		}),
		Logger: logger,
	})
	m.inputs[fieldTrainX].SetValue("1,2")
	m.inputs[fieldTrainY].SetValue("3,4")
	m.inputs[fieldPredictX].SetValue("5")

	trainCmd := m.beginTrain()
	require.NotNil(t, trainCmd)
	batch, ok := trainCmd().(tea.BatchMsg)
	require.True(t, ok, "training starts the spinner")
	assert.Len(t, batch, 2)

	predictCmd := m.beginPredict()
	require.NotNil(t, predictCmd)
	_, ok = predictCmd().(predictDoneMsg)
	assert.True(t, ok, "predicting reuses the running spinner")
}
