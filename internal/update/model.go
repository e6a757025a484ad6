package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/taskpager/internal/api"
	"github.com/sandeepkv93/taskpager/internal/model"
	"github.com/sandeepkv93/taskpager/internal/scheduler"
	"github.com/sandeepkv93/taskpager/internal/views"
)

type Focus string

const (
	FocusTable Focus = "table"
	FocusForm  Focus = "form"
)

type FormField string

const (
	FieldTitle    FormField = "title"
	FieldPriority FormField = "priority"
	FieldDue      FormField = "due"
	FieldStatus   FormField = "status"
)

var formFields = []FormField{FieldTitle, FieldPriority, FieldDue, FieldStatus}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Help    string
	Quit    string
}

// FormState holds the non-text form fields; title and due date live in text inputs.
type FormState struct {
	Field    FormField
	Priority model.Priority
	Status   bool
	Err      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	ID    string
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Store          TaskStore
	Focus          Focus
	Cursor         int
	Form           FormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Scheduler      *scheduler.Engine
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	svc      api.Service
	ctx      context.Context
	logger   *zap.Logger
	notifier DesktopNotifier
	now      func() time.Time
	toastTTL time.Duration
	toastSeq int
	toasts   []string
	inflight int

	// Bubble components used for rich TUI controls
	taskTable      table.Model
	pager          paginator.Model
	titleInput     textinput.Model
	dueInput       textinput.Model
	commandInput   textinput.Model
	syncSpinner    spinner.Model
	helpModel      help.Model
	detailViewport viewport.Model
	detailKey      string
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Intents raised by the presentation layer or the command palette.

type ChangePageMsg struct {
	Page int
}

type RefreshMsg struct{}

type SubmitTaskMsg struct {
	Form model.TaskFormData
}

type EditTaskMsg struct {
	Task model.Task
}

type CancelEditMsg struct{}

type DeleteTaskMsg struct {
	ID int
}

// Completions of remote calls.

// PageLoadedMsg carries the page that was current before the fetch was issued,
// so a failed page change can fall back to it.
type PageLoadedMsg struct {
	Page     int
	PrevPage int
	Result   model.Page
	Err      error
}

type TaskCreatedMsg struct {
	Task model.Task
	Err  error
}

type TaskUpdatedMsg struct {
	ID    int
	Patch model.TaskPatch
	Err   error
}

type TaskDeletedMsg struct {
	ID  int
	Err error
}

type ToastExpiredMsg struct {
	Event scheduler.Event
}

// NewModel builds a model with default config and no scheduler or logger.
func NewModel(svc api.Service) Model {
	return NewModelWithConfig(svc, nil, nil, nil, DefaultRuntimeConfig())
}

func NewModelWithConfig(svc api.Service, engine *scheduler.Engine, notifier DesktopNotifier, logger *zap.Logger, cfg RuntimeConfig) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}
	m := Model{
		Store:          NewTaskStore(cfg.PageSize),
		Focus:          FocusTable,
		Form:           FormState{Field: FieldTitle, Priority: model.PriorityMedium},
		DesktopEnabled: cfg.DesktopNotifications,
		Scheduler:      engine,
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		svc:      svc,
		ctx:      context.Background(),
		logger:   logger.Named("update"),
		notifier: notifier,
		now:      time.Now,
		toastTTL: cfg.ToastTTL,
	}
	if svc != nil {
		// the page 1 fetch issued by Init
		m.inflight = 1
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Title", Width: 24},
		{Title: "Priority", Width: 8},
		{Title: "Due", Width: 10},
		{Title: "Status", Width: 15},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(m.Store.PageSize+1))

	m.pager = paginator.New()
	m.pager.Type = paginator.Dots
	m.pager.PerPage = m.Store.PageSize

	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.Placeholder = "Task title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 30

	m.dueInput = textinput.New()
	m.dueInput.Prompt = ""
	m.dueInput.Placeholder = "YYYY-MM-DD"
	m.dueInput.CharLimit = len(model.DateLayout)
	m.dueInput.Width = 12

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailViewport = viewport.New(46, 7)
}

func (m *Model) syncBubbleData() {
	visible := m.Store.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", t.ID),
			t.Title,
			views.BadgeLabel(string(t.Priority)),
			t.DueDate,
			views.BadgeLabel(t.StatusLabel()),
		})
	}
	m.taskTable.SetRows(rows)
	m.clampCursor()
	if len(rows) > 0 {
		m.taskTable.SetCursor(m.Cursor)
	}
	if m.Focus == FocusTable && !m.Palette.Active {
		m.taskTable.Focus()
	} else {
		m.taskTable.Blur()
	}

	pages := m.Store.PageCount()
	m.pager.PerPage = m.Store.PageSize
	m.pager.TotalPages = pages
	m.pager.Page = m.Store.Page - 1
	if pages > 20 {
		m.pager.Type = paginator.Arabic
	} else {
		m.pager.Type = paginator.Dots
	}

	m.titleInput.Blur()
	m.dueInput.Blur()
	if m.Focus == FocusForm && !m.Palette.Active {
		switch m.Form.Field {
		case FieldTitle:
			m.titleInput.Focus()
		case FieldDue:
			m.dueInput.Focus()
		}
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}

	m.syncDetail()
}

func (m *Model) clampCursor() {
	n := len(m.Store.Visible())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.Store.Visible()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m Model) formData() model.TaskFormData {
	return model.TaskFormData{
		Title:    m.titleInput.Value(),
		Priority: m.Form.Priority,
		DueDate:  m.dueInput.Value(),
		Status:   m.Form.Status,
	}
}

// resetForm restores the form to its initial values: the task being edited, or a blank task.
func (m *Model) resetForm() {
	m.Form.Err = ""
	m.Form.Field = FieldTitle
	if m.Store.Editing != nil {
		m.loadForm(m.Store.Editing.FormData())
		return
	}
	m.loadForm(model.TaskFormData{Priority: model.PriorityMedium})
}

func (m *Model) loadForm(data model.TaskFormData) {
	m.titleInput.SetValue(data.Title)
	m.dueInput.SetValue(data.DueDate)
	m.Form.Priority = data.Priority
	m.Form.Status = data.Status
}
