package regtui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/regviz/internal/controller"
	"github.com/wandb/regviz/internal/termchart"
)

// View implements tea.Model.
func (m *Model) View() string {
	side := m.sidePanel()

	chartCols := max(m.width-sidePanelWidth-4, minChartCols)
	chartRows := max(m.height-6, minChartRows)
	chart := chartStyle.Render(termchart.Render(chartCols, chartRows, m.frame))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(sidePanelWidth).Render(side),
		chart,
	)

	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = m.notice + "  " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Sales Revenue Forecast"),
		body,
		footer,
	)
}

func (m *Model) sidePanel() string {
	var b strings.Builder

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("1. Train the model"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Advertising spend (₹k), comma-separated"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldTrainX].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Sales revenue (₹L), comma-separated"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldTrainY].View())
	b.WriteString("\n")
	b.WriteString(m.resultView(m.train, controller.ActionTrain))

	b.WriteString(sectionStyle.Render("2. Forecast"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Planned ad spend (₹k), comma-separated"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldPredictX].View())
	b.WriteString("\n")
	b.WriteString(m.resultView(m.predict, controller.ActionPredict))

	return b.String()
}

func (m *Model) statusLine() string {
	switch {
	case m.status == nil:
		return labelStyle.Render("Model Status: checking...")
	case *m.status:
		return trainedStyle.Render("✅ Model Status: Trained")
	default:
		return notTrainedStyle.Render("❌ Model Status: Not Trained")
	}
}

func (m *Model) resultView(r resultBox, action controller.Action) string {
	if !r.visible {
		return ""
	}

	if r.failed {
		return errorBoxStyle.Render(r.text) + "\n"
	}

	text := r.text
	if m.ctrl.Busy(action) {
		text += " " + m.spinner.View()
	}
	return successBoxStyle.Render(text) + "\n"
}
