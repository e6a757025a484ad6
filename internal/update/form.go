package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpager/internal/model"
	"github.com/sandeepkv93/taskpager/internal/views"
)

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.Store.Editing != nil {
			m.cancelEdit()
			return m, nil
		}
		m.Focus = FocusTable
		m.Form.Err = ""
		return m, nil
	case "enter":
		return m.submitTask(m.formData())
	case "tab", "down":
		m.Form.Field = stepField(m.Form.Field, 1)
		return m, nil
	case "shift+tab", "up":
		m.Form.Field = stepField(m.Form.Field, -1)
		return m, nil
	case "ctrl+p":
		m.Form.Priority = m.Form.Priority.Next()
		return m, nil
	case "ctrl+s":
		m.Form.Status = !m.Form.Status
		return m, nil
	}

	switch m.Form.Field {
	case FieldPriority:
		switch msg.String() {
		case "right", " ":
			m.Form.Priority = m.Form.Priority.Next()
		case "left":
			m.Form.Priority = m.Form.Priority.Next().Next()
		}
		return m, nil
	case FieldStatus:
		switch msg.String() {
		case " ", "left", "right", "x":
			m.Form.Status = !m.Form.Status
		}
		return m, nil
	case FieldTitle:
		m.titleInput = applyInputKey(m.titleInput, msg)
	case FieldDue:
		m.dueInput = applyInputKey(m.dueInput, msg)
	}
	return m, nil
}

func applyInputKey(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		return in
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		return in
	}
	in, _ = in.Update(msg)
	return in
}

func stepField(current FormField, delta int) FormField {
	idx := 0
	for i, f := range formFields {
		if f == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(formFields)) % len(formFields)
	return formFields[idx]
}

func (m Model) renderFormPanel() string {
	heading := "Add New Task"
	submit := "Add Task"
	if m.Store.Editing != nil {
		heading = fmt.Sprintf("Edit Task #%d", m.Store.Editing.ID)
		submit = "Update Task"
	}
	status := model.Task{Status: m.Form.Status}.StatusLabel()
	priority := string(m.Form.Priority)
	if priority == "" {
		priority = "unset"
	}
	return views.RenderFormPanel(views.FormPanelData{
		Heading:     heading,
		SubmitLabel: submit,
		TitleView:   m.titleInput.View(),
		DueView:     m.dueInput.View(),
		Priority:    priority,
		Status:      status,
		Field:       string(m.Form.Field),
		Focused:     m.Focus == FocusForm,
		ErrorText:   m.Form.Err,
	})
}
