// Package regtui is the interactive terminal front end: input fields for
// training and prediction next to a live chart.
package regtui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wandb/regviz/internal/controller"
	"github.com/wandb/regviz/internal/observability"
	"github.com/wandb/regviz/internal/rastercanvas"
	"github.com/wandb/regviz/internal/scene"
)

// Input fields, in focus order.
const (
	fieldTrainX = iota
	fieldTrainY
	fieldPredictX
	fieldCount
)

// Initial size before the terminal reports one.
const (
	defaultWidth  = 120
	defaultHeight = 32
)

type Params struct {
	Controller *controller.Controller
	Logger     *observability.CoreLogger

	// ExportPath is where ctrl+s saves the chart. Saving is disabled if
	// empty.
	ExportPath string

	// Context bounds service calls. Defaults to context.Background.
	Context context.Context
}

// resultBox is the outcome shown under an action's inputs.
type resultBox struct {
	text    string
	failed  bool
	visible bool
}

// Model is the bubbletea model.
type Model struct {
	ctx        context.Context
	ctrl       *controller.Controller
	logger     *observability.CoreLogger
	exportPath string

	inputs  [fieldCount]textinput.Model
	focus   int
	spinner spinner.Model
	keys    keyMap
	help    help.Model

	width, height int

	train   resultBox
	predict resultBox

	// status is nil until the service reports its state.
	status *bool
	notice string

	frame scene.Frame
}

func New(params Params) *Model {
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Model{
		ctx:        ctx,
		ctrl:       params.Controller,
		logger:     logger,
		exportPath: params.ExportPath,
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      defaultWidth,
		height:     defaultHeight,
	}

	placeholders := [fieldCount]string{
		fieldTrainX:   "e.g. 10, 20, 30, 40, 50",
		fieldTrainY:   "e.g. 25, 45, 65, 85, 105",
		fieldPredictX: "e.g. 60, 70",
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = "> "
		in.Width = sidePanelWidth - 4
		m.inputs[i] = in
	}
	m.inputs[fieldTrainX].Focus()

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.MiniDot

	m.frame = m.ctrl.Frame()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.checkStatus())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case trainDoneMsg:
		return m, m.finishTrain(msg)

	case predictDoneMsg:
		m.finishPredict(msg)
		return m, nil

	case statusMsg:
		if msg.err == nil {
			trained := msg.trained
			m.status = &trained
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.logger.CaptureError(msg.err, "path", msg.path)
			m.notice = fmt.Sprintf("Failed to save chart: %v", msg.err)
		} else {
			m.notice = "Saved chart to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % fieldCount)
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return nil
	case key.Matches(msg, m.keys.Submit):
		if m.focus == fieldPredictX {
			return m.beginPredict()
		}
		return m.beginTrain()
	case key.Matches(msg, m.keys.Export):
		return m.export()
	case key.Matches(msg, m.keys.Refresh):
		return m.checkStatus()
	}

	return m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) setFocus(field int) {
	m.inputs[m.focus].Blur()
	m.focus = field
	m.inputs[m.focus].Focus()
}

func (m *Model) busy() bool {
	return m.ctrl.Busy(controller.ActionTrain) ||
		m.ctrl.Busy(controller.ActionPredict)
}

// startSpinner returns the first spinner tick, or nil if an action in
// flight is already driving it.
func (m *Model) startSpinner() tea.Cmd {
	if m.busy() {
		return nil
	}
	return m.spinner.Tick
}

func (m *Model) beginTrain() tea.Cmd {
	tick := m.startSpinner()
	call, err := m.ctrl.BeginTrain(
		m.inputs[fieldTrainX].Value(),
		m.inputs[fieldTrainY].Value(),
	)
	if err != nil {
		m.train = failure(err)
		return nil
	}

	m.train = resultBox{text: "Training model...", visible: true}
	ctx := m.ctx
	return tea.Batch(
		tick,
		func() tea.Msg { return trainDoneMsg{call.Do(ctx)} },
	)
}

func (m *Model) finishTrain(msg trainDoneMsg) tea.Cmd {
	result, err := m.ctrl.FinishTrain(msg.reply)
	if err != nil {
		m.train = failure(err)
		return nil
	}

	m.train = resultBox{
		text:    "✅ Model Trained Successfully!\n" + result.Summary(),
		visible: true,
	}
	m.frame = m.ctrl.Frame()
	return m.checkStatus()
}

func (m *Model) beginPredict() tea.Cmd {
	tick := m.startSpinner()
	call, err := m.ctrl.BeginPredict(m.inputs[fieldPredictX].Value())
	if err != nil {
		m.predict = failure(err)
		return nil
	}

	m.predict = resultBox{text: "Making predictions...", visible: true}
	ctx := m.ctx
	return tea.Batch(
		tick,
		func() tea.Msg { return predictDoneMsg{call.Do(ctx)} },
	)
}

func (m *Model) finishPredict(msg predictDoneMsg) {
	result, err := m.ctrl.FinishPredict(msg.reply)
	if err != nil {
		m.predict = failure(err)
		return
	}

	m.predict = resultBox{
		text:    "🎯 Sales Forecast:\n" + result.Summary(),
		visible: true,
	}
	m.frame = m.ctrl.Frame()
}

func failure(err error) resultBox {
	return resultBox{
		text:    "❌ Error: " + err.Error(),
		failed:  true,
		visible: true,
	}
}

func (m *Model) checkStatus() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		trained, err := ctrl.CheckStatus(ctx)
		return statusMsg{trained: trained, err: err}
	}
}

// export saves the current frame as PNG.
func (m *Model) export() tea.Cmd {
	if m.exportPath == "" {
		m.notice = "No export path configured"
		return nil
	}

	frame, path := m.frame, m.exportPath
	return func() tea.Msg {
		c, err := rastercanvas.Render(frame)
		if err == nil {
			err = c.SavePNG(path)
		}
		return exportDoneMsg{path: path, err: err}
	}
}
