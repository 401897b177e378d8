// Package ui renders batch progress in the terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"glslx/internal/driver"
	"glslx/internal/source"
)

const (
	statusCol = 10
	tookCol   = 9
	minName   = 20
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	errStyle   = lipgloss.NewStyle().Faint(true)

	statusStyles = map[driver.Status]lipgloss.Style{
		driver.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		driver.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
	// вес статуса в общей полосе прогресса
	statusWeight = map[driver.Status]float64{
		driver.StatusWorking: 0.5,
		driver.StatusDone:    1,
		driver.StatusError:   1,
	}
)

type shaderRow struct {
	path   string
	status driver.Status
	took   time.Duration
	err    string
}

type progressModel struct {
	title string
	root  string
	stage driver.Stage

	events <-chan driver.Event
	rows   []shaderRow
	byPath map[string]int

	spin  spinner.Model
	bar   progress.Model
	width int

	failed int
	done   bool
}

type (
	eventMsg  driver.Event
	closedMsg struct{}
)

// NewProgressModel shows one row per entry and quits once events is
// closed. Paths are printed relative to root.
func NewProgressModel(title, root string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:  title,
		root:   root,
		events: events,
		rows:   make([]shaderRow, len(files)),
		byPath: make(map[string]int, len(files)),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyles[driver.StatusWorking])),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		width:  80,
	}
	for i, f := range files {
		m.rows[i] = shaderRow{path: f, status: driver.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next)
}

// next blocks on the event channel; Update re-arms it after every event.
func (m *progressModel) next() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return closedMsg{}
	}
	return eventMsg(ev)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next)
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

// applyEvent: an event without File only moves the batch stage.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		m.stage = ev.Stage
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.status = ev.Status
	switch ev.Status {
	case driver.StatusError:
		m.failed++
		if ev.Err != nil {
			row.err = ev.Err.Error()
		}
		fallthrough
	case driver.StatusDone:
		row.took = ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += statusWeight[r.status]
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) header() string {
	h := m.title
	if m.stage != "" {
		h += " (" + string(m.stage) + ")"
	}
	if !m.done {
		return m.spin.View() + " " + h
	}
	if m.failed > 0 {
		return fmt.Sprintf("done: %s, %d failed", h, m.failed)
	}
	return "done: " + h
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	nameW := max(minName, m.width-statusCol-tookCol-5)

	lines := []string{titleStyle.Render(m.header()), ""}
	for _, r := range m.rows {
		label := runewidth.FillLeft(statusLabel(r.status), statusCol)
		name := runewidth.FillRight(truncate(source.RelativePath(r.path, m.root), nameW), nameW)
		took := ""
		if r.took > 0 {
			took = r.took.Round(100 * time.Microsecond).String()
		}
		lines = append(lines, "  "+statusStyles[r.status].Render(label)+" "+name+" "+took)
		if r.err != "" {
			lines = append(lines, strings.Repeat(" ", statusCol+3)+errStyle.Render(truncate(r.err, nameW)))
		}
	}

	lines = append(lines, "")
	if m.done {
		lines = append(lines, m.bar.ViewAs(1))
	} else {
		lines = append(lines, m.bar.View())
	}
	return strings.Join(lines, "\n") + "\n"
}

func statusLabel(s driver.Status) string {
	if s == driver.StatusWorking {
		return "expanding"
	}
	return string(s)
}

// truncate keeps the tail of value: the file name says more than the
// leading directories.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	runes := []rune(value)
	for i := range runes {
		if tail := string(runes[i:]); runewidth.StringWidth(tail) <= width-3 {
			return "..." + tail
		}
	}
	return "..."
}
