package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calgrid/internal/agenda"
	"calgrid/internal/event"
	"calgrid/internal/layout"
)

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")
)

type viewMode int

const (
	viewMonth viewMode = iota
	viewWeek
	viewDay
)

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Today   key.Binding
	Month   key.Binding
	Week    key.Binding
	Day     key.Binding
	Compact key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Month, k.Week, k.Day, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.Month, k.Week, k.Day},
		{k.Compact, k.Refresh, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev")),
		Next:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Month:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Week:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Day:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Compact: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type windowMsg struct {
	events []event.Event
	memos  []event.Memo
}

type errMsg struct {
	err error
}

type tuiModel struct {
	app     *App
	mode    viewMode
	anchor  time.Time
	width   int
	height  int
	compact bool
	loading bool
	err     error
	events  []event.Event
	memos   map[string]bool
	keys    keyMap
	help    help.Model
}

func startTUI(app *App, compact bool) error {
	model := tuiModel{
		app:     app,
		mode:    viewMonth,
		anchor:  midnight(app.Now()),
		compact: compact,
		loading: true,
		memos:   map[string]bool{},
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m tuiModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m tuiModel) loadCmd() tea.Cmd {
	app, mode, anchor := m.app, m.mode, m.anchor
	return func() tea.Msg {
		var from, to time.Time
		switch mode {
		case viewMonth:
			from, to = monthWindow(anchor, app.Config.WeekStartDay())
		case viewWeek:
			from = weekStartOf(anchor, app.Config.WeekStartDay())
			to = from.AddDate(0, 0, 7)
		default:
			from = anchor
			to = anchor.AddDate(0, 0, 1)
		}
		events, memos, err := app.FetchWindow(context.Background(), from, to)
		if err != nil {
			return errMsg{err: err}
		}
		return windowMsg{events: events, memos: memos}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case windowMsg:
		m.loading = false
		m.err = nil
		m.events = msg.events
		m.memos = event.MemoDates(msg.memos)
		return m, nil
	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.anchor = m.step(-1)
			return m.reload()
		case key.Matches(msg, m.keys.Next):
			m.anchor = m.step(1)
			return m.reload()
		case key.Matches(msg, m.keys.Today):
			m.anchor = midnight(m.app.Now())
			return m.reload()
		case key.Matches(msg, m.keys.Month):
			m.mode = viewMonth
			return m.reload()
		case key.Matches(msg, m.keys.Week):
			m.mode = viewWeek
			return m.reload()
		case key.Matches(msg, m.keys.Day):
			m.mode = viewDay
			return m.reload()
		case key.Matches(msg, m.keys.Compact):
			m.compact = !m.compact
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m.reload()
		}
	}
	return m, nil
}

func (m tuiModel) step(dir int) time.Time {
	switch m.mode {
	case viewMonth:
		return m.anchor.AddDate(0, dir, 0)
	case viewWeek:
		return m.anchor.AddDate(0, 0, 7*dir)
	default:
		return m.anchor.AddDate(0, 0, dir)
	}
}

func (m tuiModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, m.loadCmd()
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(m.titleBar() + "\n\n")
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Render(m.err.Error()) + "\n")
	}
	if m.loading {
		b.WriteString(lipgloss.NewStyle().Foreground(colorMuted).Render("loading...") + "\n")
	} else {
		b.WriteString(m.body() + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m tuiModel) titleBar() string {
	var label string
	switch m.mode {
	case viewMonth:
		label = m.anchor.Format("January 2006")
	case viewWeek:
		ws := weekStartOf(m.anchor, m.app.Config.WeekStartDay())
		label = fmt.Sprintf("Week of %s", ws.Format("Jan 2"))
	default:
		label = m.anchor.Format("Mon, Jan 2 2006")
	}
	name := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("calgrid")
	return name + " · " + lipgloss.NewStyle().Bold(true).Render(label)
}

func (m tuiModel) cellWidth() int {
	if m.width == 0 {
		return defaultCellWidth
	}
	w := (m.width - 12) / 7
	if w < 8 {
		w = 8
	}
	return w
}

func (m tuiModel) body() string {
	items := event.Items(m.events, m.app.Location)
	switch m.mode {
	case viewMonth:
		maxRows := m.app.Config.MaxVisibleRows
		if m.compact {
			maxRows = m.app.Config.CompactRows
		}
		res := layout.Month(items, m.anchor, layout.MonthOptions{
			WeekStart:      m.app.Config.WeekStartDay(),
			MaxVisibleRows: maxRows,
		})
		return renderMonth(res, m.app.Now(), m.memos, m.cellWidth())
	case viewWeek:
		ws := weekStartOf(m.anchor, m.app.Config.WeekStartDay())
		res := layout.Week(items, ws, layout.WeekOptions{
			MaxVisibleColumns: m.app.Config.MaxVisibleColumns,
		})
		return renderWeek(res, m.app.Now(), m.memos, m.cellWidth())
	default:
		return m.dayBody(items)
	}
}

func (m tuiModel) dayBody(items []layout.Item) string {
	day := m.anchor
	res := layout.Day(items, day, layout.DayOptions{MaxColumns: m.app.Config.MaxVisibleColumns})
	bands := bandedItems(items, day, day.AddDate(0, 0, 1))

	workStart, workEnd, err := agenda.DayBounds(day, m.app.Config.WorkdayStart, m.app.Config.WorkdayEnd, m.app.Location)
	if err != nil {
		return err.Error()
	}
	var timed []layout.Item
	for _, it := range items {
		if !it.Banded() {
			timed = append(timed, it)
		}
	}
	free := agenda.FreeSlots(timed, workStart, workEnd)
	width := m.width - 8
	if width < 40 {
		width = 40
	}
	return renderDay(day, res, bands, free, todosByEvent(m.events), m.memos[day.Format(event.DateFormat)], width)
}
