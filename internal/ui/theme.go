package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/calnotes/internal/config"
)

// Theme holds resolved lipgloss colors for TUI rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	Highlight     lipgloss.Color // days with notes
	MarkdownStyle string
}

// palette builds a preset from colors listed in Theme field order.
func palette(primary, secondary, accent, muted, danger, bg, highlight, markdown string) Theme {
	return Theme{
		Primary:       lipgloss.Color(primary),
		Secondary:     lipgloss.Color(secondary),
		Accent:        lipgloss.Color(accent),
		Muted:         lipgloss.Color(muted),
		Danger:        lipgloss.Color(danger),
		Background:    lipgloss.Color(bg),
		Highlight:     lipgloss.Color(highlight),
		MarkdownStyle: markdown,
	}
}

const defaultPreset = "default-dark"

var presets = map[string]Theme{
	"default-dark":     palette("15", "243", "33", "241", "9", "235", "237", "dark"),
	"default-light":    palette("0", "240", "27", "245", "1", "254", "252", "light"),
	"dracula":          palette("#F8F8F2", "#6272A4", "#BD93F9", "#6272A4", "#FF5555", "#282A36", "#44475A", "dark"),
	"ayu-dark":         palette("#BFBDB6", "#565B66", "#E6B450", "#565B66", "#D95757", "#0D1017", "#1F2430", "dark"),
	"ayu-light":        palette("#575F66", "#8A9199", "#F2AE49", "#8A9199", "#E65050", "#FAFAFA", "#E7E8E9", "light"),
	"catppuccin-mocha": palette("#CDD6F4", "#585B70", "#CBA6F7", "#6C7086", "#F38BA8", "#1E1E2E", "#45475A", "dark"),
	"catppuccin-latte": palette("#4C4F69", "#9CA0B0", "#8839EF", "#9CA0B0", "#D20F39", "#EFF1F5", "#CCD0DA", "light"),
	"gruvbox-dark":     palette("#EBDBB2", "#665C54", "#FABD2F", "#928374", "#FB4934", "#282828", "#504945", "dark"),
	"gruvbox-light":    palette("#3C3836", "#A89984", "#D79921", "#928374", "#CC241D", "#FBF1C7", "#EBDBB2", "light"),
}

// ResolveTheme starts from the configured preset (default-dark when unknown)
// and applies any explicit color overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[defaultPreset]
	}

	overrides := []struct {
		value string
		dst   *lipgloss.Color
	}{
		{cfg.Primary, &theme.Primary},
		{cfg.Secondary, &theme.Secondary},
		{cfg.Accent, &theme.Accent},
		{cfg.Muted, &theme.Muted},
		{cfg.Danger, &theme.Danger},
		{cfg.Background, &theme.Background},
		{cfg.Highlight, &theme.Highlight},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = lipgloss.Color(o.value)
		}
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

// onBackground is the base for every style drawn on the screen fill.
func (t Theme) onBackground(fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(t.Background)
}

// HelpStyle is used for footers and key hints.
func (t Theme) HelpStyle() lipgloss.Style { return t.onBackground(t.Muted) }

// HeaderStyle is used for screen titles.
func (t Theme) HeaderStyle() lipgloss.Style { return t.onBackground(t.Primary).Bold(true) }

// AccentStyle is used for status messages and focused elements.
func (t Theme) AccentStyle() lipgloss.Style { return t.onBackground(t.Accent) }

// DangerStyle is used for errors and delete prompts.
func (t Theme) DangerStyle() lipgloss.Style { return t.onBackground(t.Danger) }

// ViewPaneStyle is used for the note body.
func (t Theme) ViewPaneStyle() lipgloss.Style { return t.onBackground(t.Primary) }

// TodayStyle marks today's cell in the month grid.
func (t Theme) TodayStyle() lipgloss.Style {
	return t.onBackground(t.Accent).Bold(true).Underline(true)
}

// NotedStyle marks grid cells that carry a note.
func (t Theme) NotedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Background(t.Highlight)
}

// CursorStyle marks the focused grid cell.
func (t Theme) CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(t.Accent)
}

// SelectedStyle marks days picked for mass deletion.
func (t Theme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Background).Background(t.Danger)
}

// BorderStyle frames the help overlay.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.onBackground(t.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background)
}

// bgEscapeCode is the raw SGR sequence selecting the background color, for
// pairing with \x1b[K.
func (t Theme) bgEscapeCode() string {
	s := string(t.Background)
	var r, g, b int
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
		}
	}
	return "\x1b[48;5;" + s + "m"
}

// eraseLine fills from the cursor to the right edge with the background.
func (t Theme) eraseLine() string {
	return t.bgEscapeCode() + "\x1b[K"
}

// PaintScreen centers content of contentWidth inside termWidth, pads every
// line to the full width with the background, and fills the remaining rows up
// to termHeight. Each line ends with an erase-to-end-of-line in the background
// color.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	fill := lipgloss.NewStyle().Background(t.Background)
	pad := func(n int) string {
		if n <= 0 {
			return ""
		}
		return fill.Render(strings.Repeat(" ", n))
	}
	eol := t.eraseLine()

	left := 0
	if contentWidth > 0 && contentWidth < termWidth {
		left = (termWidth - contentWidth) / 2
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = pad(left) + line + pad(termWidth-left-lipgloss.Width(line)) + eol
	}
	for len(lines) < termHeight {
		lines = append(lines, pad(termWidth)+eol)
	}
	return strings.Join(lines[:termHeight], "\n")
}

// ClearLineEnds extends every line of content to the right edge with the
// background, for output from lipgloss.Place that stops short of it.
func (t Theme) ClearLineEnds(content string) string {
	eol := t.eraseLine()
	return strings.ReplaceAll(content, "\n", eol+"\n") + eol
}

// NewList creates the month list with themed items and chrome.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, t.listDelegate(), width, height)
	l.Styles = t.listStyles()
	return l
}

func (t Theme) listDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	indent := func(fg lipgloss.Color) lipgloss.Style {
		return t.onBackground(fg).Padding(0, 0, 0, 2)
	}
	d.Styles.NormalTitle = indent(t.Primary)
	d.Styles.NormalDesc = indent(t.Muted)
	d.Styles.DimmedTitle = indent(t.Muted)
	d.Styles.DimmedDesc = indent(t.Muted)
	d.Styles.SelectedTitle = t.onBackground(t.Accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(t.Secondary)
	return d
}

func (t Theme) listStyles() list.Styles {
	s := list.DefaultStyles()
	s.Title = t.HeaderStyle()
	s.TitleBar = lipgloss.NewStyle().Background(t.Background)
	s.FilterPrompt = t.AccentStyle()
	s.FilterCursor = t.AccentStyle()
	s.ActivePaginationDot = t.AccentStyle()
	s.PaginationStyle = t.HelpStyle()
	s.HelpStyle = t.HelpStyle()
	s.InactivePaginationDot = t.HelpStyle()
	s.NoItems = t.HelpStyle()
	return s
}
