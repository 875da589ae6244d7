package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-bundler/delivery"
	"github.com/wippyai/wasm-bundler/inspect"
	"github.com/wippyai/wasm-bundler/placement"
	"github.com/wippyai/wasm-bundler/plugin"
	"github.com/wippyai/wasm-bundler/shim"
	"github.com/wippyai/wasm-bundler/wasm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	moduleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	decisionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 1)
)

type inspectTab int

const (
	tabSurface inspectTab = iota
	tabShim
)

type inspectModel struct {
	err      error
	filename string
	cfg      plugin.Config
	size     int64
	surface  *wasm.Surface
	decision placement.Decision
	shimSrc  string
	tab      inspectTab
	view     viewport.Model
	ready    bool
	width    int
}

func newInspectModel(filename string, cfg plugin.Config) *inspectModel {
	return &inspectModel{filename: filename, cfg: cfg}
}

type inspectedMsg struct {
	err      error
	size     int64
	surface  *wasm.Surface
	decision placement.Decision
	shimSrc  string
}

func (m *inspectModel) Init() tea.Cmd {
	return m.inspectFile
}

func (m *inspectModel) inspectFile() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return inspectedMsg{err: err}
	}

	ins := inspect.New(ctx)
	defer ins.Close(ctx)

	surface, err := ins.Inspect(ctx, data)
	if err != nil {
		return inspectedMsg{err: err}
	}

	decision := placement.Decide(int64(len(data)), m.cfg.TargetEnv, m.cfg.MaxFileSize, m.filename)
	wasmURL := delivery.DataURI(data)
	if decision.External {
		wasmURL = decision.AssetName
	}

	src, err := shim.Generate(surface.Groups(), surface.ExportNames(), wasmURL)
	if err != nil {
		return inspectedMsg{err: err}
	}

	return inspectedMsg{
		size:     int64(len(data)),
		surface:  surface,
		decision: decision,
		shimSrc:  src,
	}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "tab", "left", "right", "h", "l":
			if m.tab == tabSurface {
				m.tab = tabShim
			} else {
				m.tab = tabSurface
			}
			m.syncViewport()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 4
		footerHeight := 2
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - headerHeight - footerHeight
		}
		m.syncViewport()

	case inspectedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.size = msg.size
		m.surface = msg.surface
		m.decision = msg.decision
		m.shimSrc = msg.shimSrc
		m.syncViewport()
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *inspectModel) syncViewport() {
	if !m.ready || m.surface == nil {
		return
	}
	switch m.tab {
	case tabSurface:
		m.view.SetContent(m.surfaceContent())
	case tabShim:
		m.view.SetContent(m.shimSrc)
	}
	m.view.GotoTop()
}

func (m *inspectModel) surfaceContent() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Imports (%d)", len(m.surface.Imports))))
	b.WriteString("\n")
	groups := m.surface.Groups()
	if len(groups) == 0 {
		b.WriteString(helpStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, g := range groups {
		b.WriteString("  " + moduleStyle.Render(g.From) + "\n")
		for _, imp := range m.surface.Imports {
			if imp.Module == g.From {
				b.WriteString("    " + nameStyle.Render(imp.Name) + " " + helpStyle.Render("("+imp.Kind.String()+")") + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Exports (%d)", len(m.surface.Exports))))
	b.WriteString("\n")
	if len(m.surface.Exports) == 0 {
		b.WriteString(helpStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, e := range m.surface.Exports {
		b.WriteString("  " + nameStyle.Render(e.Name) + " " + helpStyle.Render("("+e.Kind.String()+")") + "\n")
	}

	return b.String()
}

func (m *inspectModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.surface == nil || !m.ready {
		return "Inspecting module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("WASM Bundler"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")

	deliveryLine := decisionStyle.Render("inline data URI")
	if m.decision.External {
		deliveryLine = decisionStyle.Render("external asset " + m.decision.AssetName)
	}
	b.WriteString(fmt.Sprintf("%d bytes, %s target, %s\n", m.size, m.cfg.TargetEnv, deliveryLine))

	surfaceTab := inactiveTabStyle.Render("Surface")
	shimTab := inactiveTabStyle.Render("Shim")
	if m.tab == tabSurface {
		surfaceTab = activeTabStyle.Render("Surface")
	} else {
		shimTab = activeTabStyle.Render("Shim")
	}
	b.WriteString(surfaceTab + " " + shimTab + "\n")

	b.WriteString(m.view.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch view • ↑/↓ scroll • q quit"))

	return b.String()
}

func runInteractive(filename string, cfg plugin.Config) error {
	p := tea.NewProgram(newInspectModel(filename, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
