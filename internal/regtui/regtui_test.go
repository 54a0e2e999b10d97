package regtui_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/regviz/internal/controller"
	"github.com/wandb/regviz/internal/observabilitytest"
	"github.com/wandb/regviz/internal/regclienttest"
	"github.com/wandb/regviz/internal/regtui"
)

var (
	csi = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	osc = regexp.MustCompile(`\x1b\].*?\x07`)
	esc = regexp.MustCompile(`\x1b.`)
	ws  = regexp.MustCompile(`\s+`)

	borders = strings.NewReplacer(
		"│", "", "─", "", "╭", "", "╮", "", "╰", "", "╯", "",
		"┌", "", "┐", "", "└", "", "┘", "",
	)
)

// normalizeTTY drops escape codes, borders and whitespace.
func normalizeTTY(s string) string {
	s = csi.ReplaceAllString(s, "")
	s = osc.ReplaceAllString(s, "")
	s = esc.ReplaceAllString(s, "")
	s = borders.Replace(s)
	return strings.ToLower(ws.ReplaceAllString(s, ""))
}

func containsAll(b []byte, wants ...string) bool {
	out := normalizeTTY(string(b))
	for _, want := range wants {
		if !strings.Contains(out, normalizeTTY(want)) {
			return false
		}
	}
	return true
}

func waitFor(t *testing.T, tm *teatest.TestModel, wants ...string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(),
		func(b []byte) bool { return containsAll(b, wants...) },
		teatest.WithDuration(3*time.Second),
	)
}

func newModel(
	t *testing.T,
	service *regclienttest.FakeService,
	exportPath string,
) *regtui.Model {
	t.Helper()
	logger := observabilitytest.NewTestLogger(t)
	return regtui.New(regtui.Params{
		Controller: controller.New(controller.Params{
			Service: service,
			Logger:  logger,
		}),
		Logger:     logger,
		ExportPath: exportPath,
	})
}

func press(m tea.Model, keyType tea.KeyType) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: keyType})
	return m
}

func typeText(m tea.Model, text string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestTUI_TrainPredictExport(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "chart.png")
	m := newModel(t, &regclienttest.FakeService{}, exportPath)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(140, 40))
	tm.Send(tea.WindowSizeMsg{Width: 140, Height: 40})

	waitFor(t, tm, "Train the model to see visualization")

	tm.Type("1,2,3")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("2,4,6")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm,
		"Model Trained Successfully",
		"Coefficient: 2.0000",
		"Equation: y = 2.0000x + 0.0000",
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("5")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Sales Forecast", "₹5k ad spend → ₹10.00L revenue")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitFor(t, tm, "Saved chart to")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	info, err := os.Stat(exportPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	final := tm.FinalModel(t)
	view := normalizeTTY(final.View())
	assert.Contains(t, view, normalizeTTY("✅ Model Status: Trained"))
	assert.Contains(t, view, normalizeTTY("Predictions"))
}

func TestTUI_PredictBeforeTraining(t *testing.T) {
	m := newModel(t, &regclienttest.FakeService{}, "")
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(140, 40))

	tm.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	tm.Type("5")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Error:", "Model not trained yet")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitFor(t, tm, "No export path configured")

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

func TestUpdate_ValidationErrors(t *testing.T) {
	var m tea.Model = newModel(t, &regclienttest.FakeService{}, "")

	m = press(m, tea.KeyEnter)
	assert.Contains(t,
		normalizeTTY(m.View()),
		normalizeTTY("❌ Error: "+controller.MsgInvalidNumbers))

	m = typeText(m, "1,2")
	m = press(m, tea.KeyTab)
	m = typeText(m, "1")
	m = press(m, tea.KeyEnter)
	assert.Contains(t,
		normalizeTTY(m.View()),
		normalizeTTY(controller.MsgLengthMismatch))

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEnter)
	view := normalizeTTY(m.View())
	assert.Contains(t, view, normalizeTTY(controller.MsgLengthMismatch))
	assert.Contains(t, view, normalizeTTY(controller.MsgInvalidNumbers))
	assert.Contains(t, view, normalizeTTY("Model Status: checking"))
}

func TestView_SmallTerminal(t *testing.T) {
	var m tea.Model = newModel(t, &regclienttest.FakeService{}, "")

	m, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})

	assert.NotPanics(t, func() { _ = m.View() })
}
