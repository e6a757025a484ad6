package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpager/internal/views"
)

// WithContext sets the context remote calls are issued under.
func (m Model) WithContext(ctx context.Context) Model {
	if ctx != nil {
		m.ctx = ctx
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3)
	if m.svc != nil {
		cmds = append(cmds, fetchPageCmd(m.ctx, m.svc, m.Store.Page, m.Store.Page, m.Store.PageSize), m.syncSpinner.Tick)
	}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForExpiryCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.syncSpinner, cmd = m.syncSpinner.Update(typed)
		return m, cmd
	case ChangePageMsg:
		return m.changePage(typed.Page)
	case RefreshMsg:
		return m.fetchCurrentPage()
	case SubmitTaskMsg:
		return m.submitTask(typed.Form)
	case EditTaskMsg:
		m.beginEdit(typed.Task)
		return m, nil
	case CancelEditMsg:
		m.cancelEdit()
		return m, nil
	case DeleteTaskMsg:
		return m.deleteTask(typed.ID)
	case PageLoadedMsg:
		m.onPageLoaded(typed)
		return m, nil
	case TaskCreatedMsg:
		m.onTaskCreated(typed)
		return m, nil
	case TaskUpdatedMsg:
		m.onTaskUpdated(typed)
		return m, nil
	case TaskDeletedMsg:
		return m.onTaskDeleted(typed)
	case ToastExpiredMsg:
		if typed.Event.Kind == toastKind {
			m.expireToast(typed.Event.Key)
		}
		if m.Scheduler != nil {
			return m, waitForExpiryCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Focus == FocusForm {
		return m.handleFormKey(msg)
	}

	switch keyStr {
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m.handleTableKey(msg)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	right := make([]string, 0, 4)
	for _, part := range []string{
		m.renderFormPanel(),
		m.renderDetailPanel(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	} {
		if strings.TrimSpace(part) != "" {
			right = append(right, part)
		}
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("taskpager | page %d/%d | total %d | focus: %s", m.Store.Page, m.Store.PageCount(), m.Store.Total, m.Focus),
		LeftPane:      m.renderTaskPanel(),
		RightPane:     strings.Join(right, "\n\n"),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Footer:        fmt.Sprintf("keys: %s cmd | %s help | %s quit | ctrl+c exit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
