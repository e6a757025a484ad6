package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/taskpager/internal/api"
	"github.com/sandeepkv93/taskpager/internal/model"
	"github.com/sandeepkv93/taskpager/internal/scheduler"
)

const (
	msgLoadFailed   = "Failed to load tasks"
	msgAdded        = "Task added successfully"
	msgAddFailed    = "Failed to add task"
	msgUpdated      = "Task updated successfully"
	msgUpdateFailed = "Failed to update task"
	msgDeleted      = "Task deleted successfully"
	msgDeleteFailed = "Failed to delete task"
)

func fetchPageCmd(ctx context.Context, svc api.Service, page, prevPage, pageSize int) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.ListTasks(ctx, page, pageSize)
		return PageLoadedMsg{Page: page, PrevPage: prevPage, Result: result, Err: err}
	}
}

func createTaskCmd(ctx context.Context, svc api.Service, form model.TaskFormData) tea.Cmd {
	return func() tea.Msg {
		task, err := svc.CreateTask(ctx, form)
		return TaskCreatedMsg{Task: task, Err: err}
	}
}

func updateTaskCmd(ctx context.Context, svc api.Service, id int, patch model.TaskPatch) tea.Cmd {
	return func() tea.Msg {
		echo, err := svc.UpdateTask(ctx, id, patch)
		return TaskUpdatedMsg{ID: id, Patch: echo, Err: err}
	}
}

func deleteTaskCmd(ctx context.Context, svc api.Service, id int) tea.Cmd {
	return func() tea.Msg {
		return TaskDeletedMsg{ID: id, Err: svc.DeleteTask(ctx, id)}
	}
}

func waitForExpiryCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ToastExpiredMsg{Event: ev}
	}
}

// startCall counts an outstanding remote call and starts the spinner for the first one.
func (m Model) startCall(cmd tea.Cmd) (Model, tea.Cmd) {
	if m.svc == nil {
		m.Status = StatusBar{Text: "no task service configured", IsError: true}
		return m, nil
	}
	m.inflight++
	if m.inflight == 1 {
		return m, tea.Batch(cmd, m.syncSpinner.Tick)
	}
	return m, cmd
}

func (m *Model) finishCall() {
	if m.inflight > 0 {
		m.inflight--
	}
}

func (m Model) Loading() bool {
	return m.inflight > 0
}

func (m Model) fetchCurrentPage() (Model, tea.Cmd) {
	return m.fetchPage(m.Store.Page)
}

// fetchPage loads the current page; prevPage is restored if the load fails.
func (m Model) fetchPage(prevPage int) (Model, tea.Cmd) {
	if m.svc == nil {
		return m.startCall(nil)
	}
	return m.startCall(fetchPageCmd(m.ctx, m.svc, m.Store.Page, prevPage, m.Store.PageSize))
}

// changePage is a no-op when the clamped target equals the current page.
func (m Model) changePage(page int) (Model, tea.Cmd) {
	prev := m.Store.Page
	if !m.Store.SetPage(page) {
		return m, nil
	}
	m.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("loading page %d", m.Store.Page)}
	return m.fetchPage(prev)
}

func (m Model) submitTask(form model.TaskFormData) (Model, tea.Cmd) {
	if err := form.Validate(); err != nil {
		m.Form.Err = strings.TrimPrefix(err.Error(), "model: ")
		m.Status = StatusBar{Text: m.Form.Err, IsError: true}
		return m, nil
	}
	if m.svc == nil {
		return m.startCall(nil)
	}

	if m.Store.Editing != nil {
		id := m.Store.Editing.ID
		patch := model.Diff(*m.Store.Editing, form)
		m.resetForm()
		m.Status = StatusBar{Text: fmt.Sprintf("updating task #%d", id)}
		return m.startCall(updateTaskCmd(m.ctx, m.svc, id, patch))
	}

	m.resetForm()
	m.Status = StatusBar{Text: "adding task"}
	return m.startCall(createTaskCmd(m.ctx, m.svc, form))
}

func (m Model) deleteTask(id int) (Model, tea.Cmd) {
	if m.svc == nil {
		return m.startCall(nil)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleting task #%d", id)}
	return m.startCall(deleteTaskCmd(m.ctx, m.svc, id))
}

func (m *Model) beginEdit(t model.Task) {
	m.Store.BeginEdit(t)
	m.resetForm()
	m.Focus = FocusForm
	m.Status = StatusBar{Text: fmt.Sprintf("editing task #%d", t.ID)}
}

func (m *Model) cancelEdit() {
	m.Store.CancelEdit()
	m.resetForm()
	m.Focus = FocusTable
	m.Status = StatusBar{Text: "edit cancelled"}
}

func (m *Model) onPageLoaded(msg PageLoadedMsg) {
	m.finishCall()
	log := m.logger.With(zap.Int("page", msg.Page), zap.Int("current_page", m.Store.Page))
	if msg.Page != m.Store.Page {
		log.Debug("discarding stale page result", zap.Error(msg.Err))
		return
	}
	if msg.Err != nil {
		log.Warn("page fetch failed", zap.Error(msg.Err))
		if msg.PrevPage > 0 && msg.PrevPage != msg.Page {
			// rows on screen still belong to the previous page
			m.Store.RestorePage(msg.PrevPage)
		}
		m.fail(msgLoadFailed, msg.Err)
		return
	}
	m.Store.ApplyPage(msg.Page, msg.Result)
	m.LastError = nil
	m.Status = StatusBar{Text: fmt.Sprintf("page %d of %d", m.Store.Page, m.Store.PageCount())}
	log.Debug("page applied", zap.Int("tasks", len(msg.Result.Tasks)), zap.Int("total", msg.Result.Total))
}

func (m *Model) onTaskCreated(msg TaskCreatedMsg) {
	m.finishCall()
	if msg.Err != nil {
		m.logger.Warn("create failed", zap.Error(msg.Err))
		m.fail(msgAddFailed, msg.Err)
		return
	}
	m.Store.ApplyCreated(msg.Task)
	m.Cursor = 0
	m.logger.Info("task created", zap.Int("id", msg.Task.ID))
	m.succeed(msgAdded)
}

func (m *Model) onTaskUpdated(msg TaskUpdatedMsg) {
	m.finishCall()
	if msg.Err != nil {
		m.logger.Warn("update failed", zap.Int("id", msg.ID), zap.Error(msg.Err))
		m.fail(msgUpdateFailed, msg.Err)
		return
	}
	wasEditing := m.Store.Editing != nil && m.Store.Editing.ID == msg.ID
	if !m.Store.ApplyUpdated(msg.ID, msg.Patch) {
		m.logger.Debug("updated task not on current page", zap.Int("id", msg.ID))
	}
	if wasEditing {
		m.resetForm()
		m.Focus = FocusTable
	}
	m.logger.Info("task updated", zap.Int("id", msg.ID), zap.Strings("fields", msg.Patch.Fields()))
	m.succeed(msgUpdated)
}

// onTaskDeleted refetches when the delete moved the page or emptied a page past the first.
func (m Model) onTaskDeleted(msg TaskDeletedMsg) (Model, tea.Cmd) {
	m.finishCall()
	if msg.Err != nil {
		m.logger.Warn("delete failed", zap.Int("id", msg.ID), zap.Error(msg.Err))
		m.fail(msgDeleteFailed, msg.Err)
		return m, nil
	}
	prev := m.Store.Page
	if !m.Store.ApplyDeleted(msg.ID) {
		m.logger.Debug("deleted task not on current page", zap.Int("id", msg.ID))
	}
	m.logger.Info("task deleted", zap.Int("id", msg.ID))
	m.succeed(msgDeleted)

	if m.Store.Page != prev || (len(m.Store.Tasks) == 0 && m.Store.Page > 1) {
		m.Cursor = 0
		m.logger.Debug("reloading page after delete", zap.Int("from", prev), zap.Int("page", m.Store.Page))
		return m.fetchCurrentPage()
	}
	return m, nil
}

func (m *Model) succeed(text string) {
	m.Status = StatusBar{Text: text}
	m.notify("Success", text, "success")
}

func (m *Model) fail(text string, err error) {
	m.LastError = err
	status := text
	var remote *api.RemoteError
	if errors.As(err, &remote) && remote.Status != 0 {
		status = fmt.Sprintf("%s (status %d)", text, remote.Status)
	}
	m.Status = StatusBar{Text: status, IsError: true}
	m.notify("Error", text, "error")
}
