package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type pagerModel struct {
	viewport viewport.Model
	content  string
	ready    bool
	maxWidth int // maximum viewport width (0 = no limit)
	width    int
	height   int
	theme    Theme
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), msg.Height-1)
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = msg.Height - 1
		}
		m.viewport.SetContent(m.content)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	cw := m.contentWidth()
	footer := m.theme.HelpStyle().Width(cw).Render("↑/↓ scroll • q quit")
	body := m.theme.ViewPaneStyle().Width(cw).Render(m.viewport.View())
	return m.theme.PaintScreen(body+"\n"+footer, m.width, m.height, cw)
}

// Pager writes command output, switching to a full-screen viewport when stdout
// is a terminal and the content is taller than it.
type Pager struct {
	Out      io.Writer
	MaxWidth int
	Theme    Theme
}

// Write prints content directly or through the pager.
func (p Pager) Write(content string) error {
	f, ok := p.Out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.Out, content)
		return nil
	}

	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil || strings.Count(content, "\n")+1 <= height-2 {
		fmt.Fprint(p.Out, content)
		return nil
	}

	prog := tea.NewProgram(pagerModel{content: content, maxWidth: p.MaxWidth, theme: p.Theme},
		tea.WithAltScreen(), tea.WithOutput(f))
	_, err = prog.Run()
	return err
}
