package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpager/internal/views"
)

func (m Model) handleTableKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(m.Store.Visible())-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "g", "home":
		m.Cursor = 0
	case "G", "end":
		m.Cursor = len(m.Store.Visible()) - 1
		m.clampCursor()
	case "h", "left", "pgup":
		return m.changePage(m.Store.Page - 1)
	case "l", "right", "pgdown":
		return m.changePage(m.Store.Page + 1)
	case "r":
		m.Status = StatusBar{Text: "refreshing"}
		return m.fetchCurrentPage()
	case "e", "enter":
		if t, ok := m.selectedTask(); ok {
			m.beginEdit(t)
		}
	case "d", "x", "delete":
		if t, ok := m.selectedTask(); ok {
			return m.deleteTask(t.ID)
		}
	case "n", "a", "tab":
		m.Focus = FocusForm
		m.Form.Field = FieldTitle
	case "c":
		m.DismissToasts()
	case "esc":
		if m.Store.Editing != nil {
			m.cancelEdit()
		}
	}
	return m, nil
}

func (m Model) renderTaskPanel() string {
	editingID := 0
	if m.Store.Editing != nil {
		editingID = m.Store.Editing.ID
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		TableView:   m.taskTable.View(),
		PagerView:   m.pager.View(),
		Page:        m.Store.Page,
		PageCount:   m.Store.PageCount(),
		Total:       m.Store.Total,
		Loading:     m.Loading(),
		SpinnerView: m.syncSpinner.View(),
		Empty:       len(m.Store.Visible()) == 0,
		EditingID:   editingID,
	})
}

func (m *Model) syncDetail() {
	t, ok := m.selectedTask()
	if !ok {
		m.detailKey = ""
		m.detailViewport.SetContent("")
		return
	}
	data := views.DetailData{
		ID:       t.ID,
		Title:    t.Title,
		Priority: string(t.Priority),
		DueDate:  t.DueDate,
		Status:   t.StatusLabel(),
	}
	md := views.DetailMarkdown(data)
	if md == m.detailKey {
		return
	}
	m.detailKey = md
	m.detailViewport.SetContent(views.RenderMarkdown(md))
}

func (m Model) renderDetailPanel() string {
	if m.detailKey == "" {
		return views.RenderDetailPanel("")
	}
	return views.RenderDetailPanel(m.detailViewport.View())
}
