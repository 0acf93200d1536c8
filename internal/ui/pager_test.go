package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/calnotes/internal/config"
)

func TestPagerViewFillsScreen(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-dark"})
	m := pagerModel{
		content: "2024-08-04  Doctor appointment\n2024-08-10  Dentist\n2024-12-25  Christmas",
		theme:   theme,
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(pagerModel)

	lines := strings.Split(stripANSI(m.View()), "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) < 80 {
			t.Errorf("line %d: expected min width 80, got %d", i, len(line))
		}
	}
}

func TestPagerViewPreservesContent(t *testing.T) {
	m := pagerModel{
		content:  "Doctor appointment",
		maxWidth: 60,
		theme:    ResolveTheme(config.ThemeConfig{Preset: "dracula"}),
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = sized.(pagerModel)

	stripped := stripANSI(m.View())
	if !strings.Contains(stripped, "Doctor appointment") {
		t.Error("expected pager content in output")
	}
	if !strings.Contains(stripped, "scroll") {
		t.Error("expected footer help text in output")
	}
	if m.viewport.Width != 60 {
		t.Errorf("viewport width = %d, want 60", m.viewport.Width)
	}
}

func TestPagerQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := pagerModel{}.Update(key)
		if cmd == nil {
			t.Errorf("%s: expected quit command", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestPagerWriteNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := Pager{Out: &buf, MaxWidth: 80}
	if err := p.Write("hello\n"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("got %q", buf.String())
	}
}
