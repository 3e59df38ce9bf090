// Package tui implements the interactive terminal task list.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/LoveFromCodes/todo-list/internal/task"
	"github.com/LoveFromCodes/todo-list/internal/view"
)

// Store is the persistence surface the list needs.
type Store interface {
	All() ([]*task.Task, error)
	Insert(t *task.Task) error
	Update(t *task.Task) error
	Delete(id uuid.UUID) error
}

// screen represents the current screen state.
type screen int

const (
	screenList screen = iota
	screenConfirmDelete
	screenAdd
	screenSearch
)

const (
	keyEsc = "esc"

	listChrome  = 3 // header + blank line + status bar
	errorChrome = 1 // extra line when error toast is displayed
)

// Model is the top-level bubbletea model.
type Model struct {
	store    Store
	onChange func() // invoked after every successful mutation

	tasks   []*task.Task // all tasks, storage order
	visible []*task.Task // tasks after filter/search/sort

	opts      view.Options
	cursor    int
	scrollOff int
	width     int
	height    int
	scr       screen
	err       error
	input     textinput.Model
	now       func() time.Time

	// Delete confirmation.
	deleteID    uuid.UUID
	deleteTitle string
}

// New creates a list model backed by the given store. onChange is called
// after every successful mutation and may be nil.
func New(st Store, onChange func()) *Model {
	in := textinput.New()
	in.CharLimit = 200
	in.Width = 50 //nolint:mnd // input field width

	m := &Model{
		store:    st,
		onChange: onChange,
		opts: view.Options{
			Filter:    view.FilterIncomplete,
			Sort:      view.SortCreationDate,
			Ascending: true,
		},
		input: in,
		now:   time.Now,
	}
	m.loadTasks()
	return m
}

// SetNow overrides the clock used for overdue highlighting (for testing).
func (m *Model) SetNow(fn func() time.Time) {
	m.now = fn
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case ReloadMsg:
		m.loadTasks()
		return m, nil
	case errMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.scr {
	case screenConfirmDelete:
		return m.viewDeleteConfirm()
	case screenAdd:
		return m.viewInput("New task")
	case screenSearch:
		return m.viewInput("Search")
	default:
		return m.viewList()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return m, tea.Quit
	}

	switch m.scr {
	case screenList:
		return m.handleListKey(msg)
	case screenConfirmDelete:
		return m.handleDeleteKey(msg)
	case screenAdd, screenSearch:
		return m.handleInputKey(msg)
	}

	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case "g", "home":
		m.cursor = 0
		m.ensureVisible()
	case "G", "end":
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
			m.ensureVisible()
		}
	case " ", "enter":
		m.toggleSelected()
	case "d", "D":
		m.handleDeleteStart()
	case "a":
		m.input.Reset()
		m.input.Focus()
		m.scr = screenAdd
		return m, textinput.Blink
	case "/":
		m.input.Reset()
		m.input.SetValue(m.opts.Search)
		m.input.Focus()
		m.scr = screenSearch
		return m, textinput.Blink
	case "f":
		m.cycleFilter()
	case "s":
		m.cycleSort()
	case "o":
		m.opts.Ascending = !m.opts.Ascending
		m.applyView()
	}
	return m, nil
}

func (m *Model) handleDeleteStart() {
	if t := m.selectedTask(); t != nil {
		m.deleteID = t.ID
		m.deleteTitle = t.Title
		m.scr = screenConfirmDelete
	}
}

func (m *Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.executeDelete()
	case "n", "N", keyEsc, "q":
		m.scr = screenList
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.input.Blur()
		m.scr = screenList
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		if m.scr == screenAdd {
			m.executeAdd(value)
		} else {
			m.opts.Search = value
			m.applyView()
		}
		m.scr = screenList
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) executeAdd(title string) {
	if title == "" {
		return
	}
	t, err := task.New(title)
	if err != nil {
		m.err = err
		return
	}
	if err := m.store.Insert(t); err != nil {
		m.err = fmt.Errorf("adding task: %w", err)
		return
	}
	m.notifyChange()
	m.loadTasks()
}

func (m *Model) toggleSelected() {
	t := m.selectedTask()
	if t == nil {
		return
	}

	if t.IsCompleted {
		t.Reopen()
	} else {
		t.Complete()
	}

	if err := m.store.Update(t); err != nil {
		m.err = fmt.Errorf("updating task: %w", err)
		return
	}
	m.notifyChange()
	m.loadTasks()
}

func (m *Model) executeDelete() (tea.Model, tea.Cmd) {
	if err := m.store.Delete(m.deleteID); err != nil {
		m.err = fmt.Errorf("deleting task: %w", err)
		m.scr = screenList
		return m, nil
	}

	m.notifyChange()
	m.scr = screenList
	m.loadTasks()
	return m, nil
}

func (m *Model) notifyChange() {
	if m.onChange != nil {
		m.onChange()
	}
}

func (m *Model) cycleFilter() {
	switch m.opts.Filter {
	case view.FilterIncomplete:
		m.opts.Filter = view.FilterCompleted
	case view.FilterCompleted:
		m.opts.Filter = view.FilterAll
	default:
		m.opts.Filter = view.FilterIncomplete
	}
	m.applyView()
}

func (m *Model) cycleSort() {
	switch m.opts.Sort {
	case view.SortCreationDate:
		m.opts.Sort = view.SortDueDate
	case view.SortDueDate:
		m.opts.Sort = view.SortPriority
	default:
		m.opts.Sort = view.SortCreationDate
	}
	m.applyView()
}

// loadTasks reads all tasks from the store and reapplies the current view.
func (m *Model) loadTasks() {
	tasks, err := m.store.All()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.tasks = tasks
	m.applyView()
}

func (m *Model) applyView() {
	m.visible = view.Apply(m.tasks, m.opts)
	m.clampCursor()
}

func (m *Model) selectedTask() *task.Task {
	if len(m.visible) == 0 {
		return nil
	}
	if m.cursor >= 0 && m.cursor < len(m.visible) {
		return m.visible[m.cursor]
	}
	return nil
}

func (m *Model) clampCursor() {
	if len(m.visible) == 0 {
		m.cursor = 0
		m.scrollOff = 0
		return
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-row elements.
func (m *Model) chromeHeight() int {
	h := listChrome
	if m.err != nil {
		h += errorChrome
	}
	return h
}

func (m *Model) visibleRows() int {
	n := m.height - m.chromeHeight()
	if n < 1 {
		return 1
	}
	return n
}

// ensureVisible adjusts the scroll offset so the cursor row is within the
// visible window.
func (m *Model) ensureVisible() {
	maxVis := m.visibleRows()
	switch {
	case m.cursor >= m.scrollOff+maxVis:
		m.scrollOff = m.cursor - maxVis + 1
	case m.cursor < m.scrollOff:
		m.scrollOff = m.cursor
	}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a list refresh.
type ReloadMsg struct{}

type errMsg struct{ err error }

// --- Styles ---

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	importantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// --- View rendering ---

func (m *Model) viewList() string {
	header := headerStyle.Width(m.width).Render(truncate(m.headerText(), m.width-2)) //nolint:mnd // header padding

	maxVis := m.visibleRows()
	start := m.scrollOff
	end := start + maxVis
	if end > len(m.visible) {
		end = len(m.visible)
	}
	if start > len(m.visible) {
		start = len(m.visible)
	}

	var rows []string
	if len(m.visible) == 0 {
		rows = append(rows, dimStyle.Render("  (no tasks)"))
	} else {
		for i := start; i < end; i++ {
			rows = append(rows, m.renderRow(m.visible[i], i == m.cursor))
		}
	}

	body := strings.Join(rows, "\n")

	// Pad to a stable height so the status bar stays at the bottom.
	target := m.height - m.chromeHeight()
	if actual := len(rows); target > 0 && actual < target {
		body += strings.Repeat("\n", target-actual)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", m.renderStatusBar())
}

func (m *Model) headerText() string {
	open := 0
	for _, t := range m.tasks {
		if !t.IsCompleted {
			open++
		}
	}
	return fmt.Sprintf("todo  %d open / %d total", open, len(m.tasks))
}

func (m *Model) renderRow(t *task.Task, active bool) string {
	mark := "[ ]"
	if t.IsCompleted {
		mark = "[x]"
	}

	due := ""
	if t.DueDate != nil {
		due = "  due " + t.DueDate.Format("2006-01-02 15:04")
	}

	line := fmt.Sprintf(" %s %s%s", mark, t.Title, due)
	line = truncate(line, m.width)

	if active {
		return cursorStyle.Width(m.width).Render(line)
	}

	switch {
	case t.IsCompleted:
		return doneStyle.Render(line)
	case t.DueDate != nil && t.DueDate.Before(m.now()):
		return overdueStyle.Render(line)
	case t.Priority == task.PriorityImportant:
		return importantStyle.Render(line)
	default:
		return line
	}
}

func (m *Model) renderStatusBar() string {
	dir := "asc"
	if !m.opts.Ascending {
		dir = "desc"
	}
	status := fmt.Sprintf(" %s | %s %s", m.opts.Filter, m.opts.Sort, dir)
	if m.opts.Search != "" {
		status += fmt.Sprintf(" | /%s", m.opts.Search)
	}
	status += " | space:toggle a:add d:del /:search f:filter s:sort o:order q:quit"
	status = truncate(status, m.width)

	if m.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+m.err.Error(), m.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}

	return statusBarStyle.Render(status)
}

func (m *Model) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		"  " + truncate(m.deleteTitle, 60) + "\n\n" + //nolint:mnd // dialog title width
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (m *Model) viewInput(label string) string {
	content := lipgloss.NewStyle().Bold(true).Render(label) + "\n\n" +
		m.input.View() + "\n\n" +
		dimStyle.Render("enter:confirm  esc:cancel")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
