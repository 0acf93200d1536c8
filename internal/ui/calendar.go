package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/calnotes/internal/editor"
	"github.com/chris-regnier/calnotes/internal/logs"
	"github.com/chris-regnier/calnotes/internal/note"
	"github.com/chris-regnier/calnotes/internal/storage"
)

// calendarScreen represents the current screen state.
type calendarScreen int

const (
	screenHome calendarScreen = iota
	screenMonth
	screenNote
)

const maxNoteLength = 10000

// StorageProvider abstracts the note store for the TUI.
type StorageProvider interface {
	Get(d note.Date) (string, bool)
	Set(d note.Date, text string) error
	DeleteMany(dates []note.Date) (int, error)
	MonthSummary(year int, month time.Month) (storage.MonthSummary, error)
	YearSummary(year int) ([]storage.MonthSummary, error)
	Recent(today note.Date, limit int) []storage.RecentNote
	Save() error
}

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	Editor      string
	MaxWidth    int
	RecentLimit int
	Theme       Theme
}

// monthItem implements list.Item for a month on the home screen.
type monthItem struct {
	summary storage.MonthSummary
	current bool
}

func (i monthItem) Title() string {
	marker := "  "
	if i.current {
		marker = "● "
	}
	return fmt.Sprintf("%s%s %d", marker, i.summary.Month, i.summary.Year)
}

func (i monthItem) Description() string {
	if i.summary.Count == 0 {
		return "no notes"
	}
	return countLabel(i.summary.Count)
}

func (i monthItem) FilterValue() string { return i.summary.Month.String() }

type noteSavedMsg struct {
	date      note.Date
	unchanged bool
	err       error
}

type notesDeletedMsg struct {
	removed int
	err     error
}

// calendarModel is the Bubble Tea model for the calendar.
type calendarModel struct {
	store  StorageProvider
	cfg    TUIConfig
	today  note.Date
	screen calendarScreen
	// Home
	year      int
	months    []storage.MonthSummary
	monthList list.Model
	recent    []storage.RecentNote
	// Month
	month      time.Month
	summary    storage.MonthSummary
	cursor     int
	deleteMode bool
	selected   map[int]bool
	confirming bool
	// Note
	noteDate note.Date
	noteText string
	hasNote  bool
	viewport viewport.Model
	input    textarea.Model
	editing  bool
	// Common
	status    string
	statusErr bool
	help      bool
	width     int
	height    int
	ready     bool
}

func newCalendarModel(store StorageProvider, cfg TUIConfig, today note.Date) calendarModel {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	m := calendarModel{
		store:    store,
		cfg:      cfg,
		today:    today,
		screen:   screenHome,
		year:     today.Year,
		month:    today.Month,
		cursor:   today.Day,
		selected: map[int]bool{},
	}
	m.loadHome()
	return m
}

func (m calendarModel) Init() tea.Cmd {
	return nil
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case noteSavedMsg:
		return m.handleNoteSaved(msg), nil

	case notesDeletedMsg:
		return m.handleNotesDeleted(msg), nil

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "esc", "q":
				m.help = false
			}
			return m, nil
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "?":
			m.help = true
			return m, nil
		}

		switch m.screen {
		case screenHome:
			return m.updateHome(msg)
		case screenMonth:
			return m.updateMonth(msg)
		case screenNote:
			return m.updateNote(msg)
		}
	}

	var cmd tea.Cmd
	switch {
	case m.editing:
		m.input, cmd = m.input.Update(msg)
	case m.screen == screenNote:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// --- Home ---

func (m *calendarModel) loadHome() {
	months, err := m.store.YearSummary(m.year)
	if err != nil {
		m.setError(err)
		return
	}
	m.months = months

	items := make([]list.Item, len(months))
	for i, s := range months {
		items[i] = monthItem{summary: s, current: s.Year == m.today.Year && s.Month == m.today.Month}
	}
	idx := 0
	if m.monthList.Items() != nil {
		idx = m.monthList.Index()
	} else if m.year == m.today.Year {
		idx = int(m.today.Month) - 1
	}

	m.monthList = m.cfg.Theme.NewList(items, 0, 0)
	m.monthList.Title = fmt.Sprintf("Calendar %d", m.year)
	m.monthList.SetShowHelp(false)
	m.monthList.SetFilteringEnabled(false)
	m.monthList.SetShowStatusBar(false)
	m.monthList.Select(idx)

	m.recent = m.store.Recent(m.today, m.cfg.RecentLimit)
	m.layout()
}

func (m calendarModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h", "[":
		return m.changeYear(-1), nil
	case "right", "l", "]":
		return m.changeYear(1), nil
	case "t":
		m.year = m.today.Year
		m.monthList = list.Model{}
		m.loadHome()
		return m.openMonth(m.today.Month, m.today.Day), nil
	case "enter":
		return m.openMonth(time.Month(m.monthList.Index()+1), 1), nil
	}

	var cmd tea.Cmd
	m.monthList, cmd = m.monthList.Update(msg)
	return m, cmd
}

func (m calendarModel) changeYear(delta int) calendarModel {
	year := m.year + delta
	if year < note.MinYear || year > note.MaxYear {
		return m
	}
	m.year = year
	m.loadHome()
	return m
}

// --- Month ---

func (m calendarModel) openMonth(month time.Month, day int) calendarModel {
	m.month = month
	m.cursor = day
	m.screen = screenMonth
	m.deleteMode = false
	m.selected = map[int]bool{}
	m.refreshMonth()
	return m
}

func (m *calendarModel) refreshMonth() {
	summary, err := m.store.MonthSummary(m.year, m.month)
	if err != nil {
		m.setError(err)
		return
	}
	m.summary = summary
	if days := note.DaysIn(m.year, m.month); m.cursor > days {
		m.cursor = days
	}
	if m.cursor < 1 {
		m.cursor = 1
	}
}

func (m calendarModel) updateMonth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		if m.deleteMode {
			m.deleteMode = false
			m.selected = map[int]bool{}
			return m, nil
		}
		m.screen = screenHome
		m.loadHome()
		return m, nil
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)
	case "n", ">":
		return m.shiftMonth(1), nil
	case "p", "<":
		return m.shiftMonth(-1), nil
	case "t":
		m.year = m.today.Year
		return m.openMonth(m.today.Month, m.today.Day), nil
	case "d":
		m.deleteMode = !m.deleteMode
		m.selected = map[int]bool{}
		m.clearStatus()
	case " ":
		if m.deleteMode && m.summary.HasDay(m.cursor) {
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}
		}
	case "enter":
		if m.deleteMode {
			if len(m.selected) > 0 {
				m.confirming = true
			}
			return m, nil
		}
		return m.openNote(note.Date{Year: m.year, Month: m.month, Day: m.cursor}), nil
	}
	return m, nil
}

func (m *calendarModel) moveCursor(delta int) {
	day := m.cursor + delta
	if day >= 1 && day <= note.DaysIn(m.year, m.month) {
		m.cursor = day
	}
}

func (m calendarModel) shiftMonth(delta int) calendarModel {
	t := time.Date(m.year, m.month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	if t.Year() < note.MinYear || t.Year() > note.MaxYear {
		return m
	}
	m.year = t.Year()
	return m.openMonth(t.Month(), m.cursor)
}

func (m calendarModel) selectedDates() []note.Date {
	days := make([]int, 0, len(m.selected))
	for d := range m.selected {
		days = append(days, d)
	}
	sort.Ints(days)
	dates := make([]note.Date, len(days))
	for i, d := range days {
		dates[i] = note.Date{Year: m.year, Month: m.month, Day: d}
	}
	return dates
}

func (m calendarModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.confirming = false
		dates := m.selectedDates()
		store := m.store
		return m, func() tea.Msg {
			return deleteNotes(store, dates)
		}
	case "n", "esc", "enter", "q":
		m.confirming = false
	}
	return m, nil
}

func deleteNotes(store StorageProvider, dates []note.Date) tea.Msg {
	removed, err := store.DeleteMany(dates)
	if err != nil {
		return notesDeletedMsg{err: err}
	}
	if err := store.Save(); err != nil {
		logs.Printf("saving after deleting %d notes: %v", removed, err)
		return notesDeletedMsg{removed: removed, err: err}
	}
	logs.Printf("deleted %d notes", removed)
	return notesDeletedMsg{removed: removed}
}

func (m calendarModel) handleNotesDeleted(msg notesDeletedMsg) calendarModel {
	if msg.removed > 0 || msg.err == nil {
		m.deleteMode = false
		m.selected = map[int]bool{}
	}
	m.refreshMonth()
	if msg.err != nil {
		m.setError(fmt.Errorf("delete: %w", msg.err))
		return m
	}
	m.setStatus(fmt.Sprintf("Deleted %s", countLabel(msg.removed)))
	return m
}

// --- Note ---

func (m calendarModel) openNote(d note.Date) calendarModel {
	m.noteDate = d
	m.noteText, m.hasNote = m.store.Get(d)
	m.screen = screenNote
	m.editing = false
	m.viewport = viewport.New(m.contentWidth(), m.viewportHeight())
	m.viewport.SetContent(m.renderNoteBody())
	return m
}

func (m calendarModel) renderNoteBody() string {
	if !m.hasNote {
		return m.cfg.Theme.HelpStyle().Render("No note for this day. Press e to write one.")
	}
	return RenderNote(m.noteText, m.contentWidth(), m.cfg.Theme.MarkdownStyle)
}

func (m calendarModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenMonth
		m.cursor = m.noteDate.Day
		m.refreshMonth()
		return m, nil
	case "left", "h":
		return m.shiftNote(-1), nil
	case "right", "l":
		return m.shiftNote(1), nil
	case "e":
		return m.startEditing()
	case "E":
		return m.startExternalEdit()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m calendarModel) shiftNote(delta int) calendarModel {
	t := m.noteDate.Time(time.UTC).AddDate(0, 0, delta)
	d := note.DateOf(t)
	if d.Validate() != nil {
		return m
	}
	m.year = d.Year
	m.month = d.Month
	return m.openNote(d)
}

func (m calendarModel) startEditing() (tea.Model, tea.Cmd) {
	ta := textarea.New()
	ta.Placeholder = "Write a note for this day..."
	ta.CharLimit = maxNoteLength
	ta.ShowLineNumbers = false
	ta.SetWidth(max(m.contentWidth()-4, 10))
	ta.SetHeight(max(m.viewportHeight()-2, 3))
	ta.SetValue(m.noteText)
	ta.Focus()
	m.input = ta
	m.editing = true
	m.clearStatus()
	return m, textarea.Blink
}

func (m calendarModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		d := m.noteDate
		text := m.input.Value()
		store := m.store
		return m, func() tea.Msg {
			return saveNote(store, d, text)
		}
	case "ctrl+d":
		m.input.Reset()
		return m, nil
	case "esc":
		m.editing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m calendarModel) startExternalEdit() (tea.Model, tea.Cmd) {
	session, err := editor.Prepare(m.noteText)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	c, err := session.Command(editor.ResolveEditor(m.cfg.Editor))
	if err != nil {
		session.Cleanup()
		m.setError(err)
		return m, nil
	}

	d := m.noteDate
	store := m.store
	return m, tea.ExecProcess(c, func(err error) tea.Msg {
		defer session.Cleanup()
		if err != nil {
			return noteSavedMsg{date: d, err: fmt.Errorf("editor exited with error: %w", err)}
		}
		text, changed, err := session.Result()
		if err != nil {
			return noteSavedMsg{date: d, err: err}
		}
		if !changed {
			return noteSavedMsg{date: d, unchanged: true}
		}
		return saveNote(store, d, text)
	})
}

func saveNote(store StorageProvider, d note.Date, text string) tea.Msg {
	if err := store.Set(d, text); err != nil {
		return noteSavedMsg{date: d, err: err}
	}
	if err := store.Save(); err != nil {
		logs.Printf("saving note for %s: %v", d, err)
		return noteSavedMsg{date: d, err: err}
	}
	return noteSavedMsg{date: d}
}

func (m calendarModel) handleNoteSaved(msg noteSavedMsg) calendarModel {
	if msg.date == m.noteDate {
		m.noteText, m.hasNote = m.store.Get(msg.date)
		m.viewport.SetContent(m.renderNoteBody())
	}
	switch {
	case msg.err != nil:
		// The textarea stays open so the edit is not lost.
		m.setError(fmt.Errorf("save failed: %w", msg.err))
		return m
	case msg.unchanged:
		m.setStatus("No changes")
	case m.hasNote:
		m.setStatus("Saved")
	default:
		m.setStatus("Cleared")
	}
	m.editing = false
	return m
}

// --- Layout & view ---

func (m *calendarModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *calendarModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *calendarModel) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (m calendarModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m calendarModel) viewportHeight() int {
	headerHeight := 2
	footerHeight := 2
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *calendarModel) layout() {
	if !m.ready {
		return
	}
	recentHeight := len(m.recent) + 2
	footerHeight := 2
	m.monthList.SetSize(m.contentWidth(), max(m.height-recentHeight-footerHeight, 5))
	if m.screen == screenNote {
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = m.viewportHeight()
		if m.editing {
			m.input.SetWidth(max(m.contentWidth()-4, 10))
			m.input.SetHeight(max(m.viewportHeight()-2, 3))
		} else {
			m.viewport.SetContent(m.renderNoteBody())
		}
	}
}

func (m calendarModel) View() string {
	if !m.ready {
		// No PaintScreen here: dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}
	if m.help {
		return m.cfg.Theme.ClearLineEnds(m.helpOverlay())
	}

	var result string
	switch m.screen {
	case screenHome:
		result = m.homeView()
	case screenMonth:
		result = m.monthView()
	case screenNote:
		result = m.noteView()
	}
	return m.cfg.Theme.PaintScreen(result, m.width, m.height, m.contentWidth())
}

func (m calendarModel) footer(keys string) string {
	cw := m.contentWidth()
	if m.confirming {
		return m.cfg.Theme.DangerStyle().Width(cw).Render(DeletePrompt(len(m.selected)) + " [y/N] ")
	}
	if m.status != "" {
		style := m.cfg.Theme.AccentStyle()
		if m.statusErr {
			style = m.cfg.Theme.DangerStyle()
		}
		return style.Width(cw).Render(m.status) + "\n" + m.cfg.Theme.HelpStyle().Width(cw).Render(keys)
	}
	return m.cfg.Theme.HelpStyle().Width(cw).Render(keys)
}

func (m calendarModel) homeView() string {
	cw := m.contentWidth()
	var b strings.Builder
	b.WriteString(m.monthList.View())
	b.WriteString("\n")
	b.WriteString(m.cfg.Theme.HeaderStyle().Width(cw).Render("Upcoming"))
	if len(m.recent) == 0 {
		b.WriteString("\n" + m.cfg.Theme.HelpStyle().Width(cw).Render("  No notes yet."))
	}
	for _, r := range m.recent {
		line := fmt.Sprintf("  %s  %-22s %s", r.Date, r.Countdown, r.Preview(max(cw-40, 10)))
		b.WriteString("\n" + m.cfg.Theme.ViewPaneStyle().Width(cw).Render(line))
	}
	b.WriteString("\n" + m.footer("↑/↓ month • ←/→ year • enter open • t today • ? help • q quit"))
	return b.String()
}

func (m calendarModel) monthView() string {
	cw := m.contentWidth()
	title := fmt.Sprintf("%s %d    %s", m.month, m.year, countLabel(m.summary.Count))
	if m.deleteMode {
		title += fmt.Sprintf("    DELETE MODE (%d selected)", len(m.selected))
	}
	header := m.cfg.Theme.HeaderStyle().Width(cw).Render(title)

	grid := m.cfg.Theme.renderGrid(gridState{
		year:     m.year,
		month:    m.month,
		today:    m.today,
		cursor:   m.cursor,
		noted:    m.summary.HasDay,
		selected: m.selected,
	})

	preview := ""
	if text, ok := m.store.Get(note.Date{Year: m.year, Month: m.month, Day: m.cursor}); ok {
		n := note.Note{Text: text}
		preview = m.cfg.Theme.ViewPaneStyle().Width(cw).Render(n.Preview(max(cw-2, 10)))
	}

	keys := "arrows move • enter open • n/p month • d delete mode • esc back • q quit"
	if m.deleteMode {
		keys = "arrows move • space select • enter delete • esc cancel"
	}
	return header + "\n\n" + grid + "\n\n" + preview + "\n" + m.footer(keys)
}

func (m calendarModel) noteView() string {
	cw := m.contentWidth()
	t := m.noteDate.Time(time.Local)
	header := m.cfg.Theme.HeaderStyle().Width(cw).Render(t.Format("Monday, January 2 2006"))

	if m.editing {
		return header + "\n\n" + m.input.View() + "\n" + m.footer("ctrl+s save • ctrl+d clear • esc cancel")
	}
	body := m.cfg.Theme.ViewPaneStyle().Width(cw).Render(m.viewport.View())
	return header + "\n\n" + body + "\n" + m.footer("e edit • E $EDITOR • ←/→ day • esc back • q quit")
}

func (m calendarModel) helpOverlay() string {
	help := m.cfg.Theme.BorderStyle().
		Padding(1, 2).
		Width(48).
		Render(`Home
  ↑/↓        choose month
  ←/→ [ ]    previous / next year
  enter      open month
  t          jump to today

Month
  arrows     move between days
  n/p        next / previous month
  enter      open the day's note
  d          toggle delete mode
  space      select a noted day (delete mode)
  enter      delete selected days (delete mode)

Note
  e          edit inline (ctrl+s save, ctrl+d clear)
  E          edit in $EDITOR
  ←/→        previous / next day

  esc        back     q quit     ? close help`)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, help,
		lipgloss.WithWhitespaceBackground(m.cfg.Theme.Background))
}

// RunTUI launches the interactive calendar.
func RunTUI(store StorageProvider, cfg TUIConfig) error {
	m := newCalendarModel(store, cfg, note.Today())
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
