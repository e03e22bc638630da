// Package viz renders a live terminal view of an integration in progress.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pentad/internal/dynamo"
	"github.com/san-kum/pentad/internal/integrate"
	"github.com/san-kum/pentad/internal/resonance"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	fireStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	holdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the vector field live and charts the state norm.
type Model struct {
	field     dynamo.Field
	stepper   *integrate.Heun
	evaluator *resonance.Evaluator

	state        dynamo.State
	prev         dynamo.State
	initialState dynamo.State
	t, h         float64
	running      bool
	failed       error

	normHistory []float64
	proof       resonance.Proof
}

func NewModel(field dynamo.Field, x0 dynamo.State, h float64, evaluator *resonance.Evaluator) Model {
	return Model{
		field:        field,
		stepper:      integrate.NewHeun(),
		evaluator:    evaluator,
		state:        x0,
		prev:         x0,
		initialState: x0,
		h:            h,
		running:      true,
		normHistory:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initialState
			m.prev = m.initialState
			m.t = 0
			m.failed = nil
			m.normHistory = m.normHistory[:0]
			m.proof = resonance.Proof{}
		}
	case TickMsg:
		if m.running && m.failed == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	next, err := m.stepper.Step(m.field, m.state, m.t, m.h)
	if err != nil {
		m.failed = err
		return
	}

	m.prev = m.state
	m.state = next
	m.t += m.h
	m.proof = m.evaluator.Evaluate(m.prev, m.state, 0)

	m.normHistory = append(m.normHistory, m.state.Norm())
	if len(m.normHistory) > historyCapacity {
		m.normHistory = m.normHistory[1:]
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("PENTAD LIVE") + "\n")

	if m.failed != nil {
		s.WriteString(fmt.Sprintf("integration failed: %v\n", m.failed))
		return s.String()
	}

	if len(m.normHistory) > 1 {
		chart := asciigraph.Plot(m.normHistory,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("state norm"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Norm") + valueStyle.Render(fmt.Sprintf("%.6f", m.state.Norm())) + "\n")
	s.WriteString(labelStyle.Render("delta_pi") + valueStyle.Render(fmt.Sprintf("%.6f", m.proof.DeltaPi)) + "\n")
	s.WriteString(labelStyle.Render("phi") + valueStyle.Render(fmt.Sprintf("%.6f", m.proof.Phi)) + "\n")
	s.WriteString(labelStyle.Render("delta_v") + valueStyle.Render(fmt.Sprintf("%.6f", m.proof.DeltaV)) + "\n")

	if m.proof.Valid && m.proof.DeltaV < 0 {
		s.WriteString(labelStyle.Render("gate") + fireStyle.Render("FIRE") + "\n")
	} else {
		s.WriteString(labelStyle.Render("gate") + holdStyle.Render("HOLD") + "\n")
	}

	if !m.running {
		s.WriteString("\nPAUSED\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause  R:Reset  Q:Quit"))
	return s.String()
}

// Run starts the live view and blocks until quit.
func Run(field dynamo.Field, x0 dynamo.State, h float64, evaluator *resonance.Evaluator) error {
	p := tea.NewProgram(NewModel(field, x0, h, evaluator))
	_, err := p.Run()
	return err
}
