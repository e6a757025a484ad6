package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskpager/internal/commands"
	"github.com/sandeepkv93/taskpager/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	m.commandInput = applyInputKey(m.commandInput, msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var out tea.Cmd
	gotoPage := func(page int, edge string) (commands.Result, error) {
		if err := m.requireService(); err != nil {
			return commands.Result{}, err
		}
		target := model.ClampPage(page, m.Store.Total, m.Store.PageSize)
		if target == m.Store.Page {
			return commands.Result{Message: fmt.Sprintf("already on %s page %d", edge, target)}, nil
		}
		m, out = m.changePage(target)
		return commands.Result{Message: fmt.Sprintf("loading page %d", target)}, nil
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if err := m.requireService(); err != nil {
				return commands.Result{}, err
			}
			form := model.TaskFormData{Title: a.Title, Priority: a.Priority, DueDate: a.DueDate, Status: a.Done}
			if form.Priority == "" {
				form.Priority = model.PriorityMedium
			}
			if form.DueDate == "" {
				form.DueDate = m.now().Format(model.DateLayout)
			}
			if err := form.Validate(); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: strings.TrimPrefix(err.Error(), "model: ")}
			}
			m, out = m.startCall(createTaskCmd(m.ctx, m.svc, form))
			return commands.Result{Message: fmt.Sprintf("adding task: %s", form.Title)}, nil
		},
		Edit: func(t commands.TargetArgs) (commands.Result, error) {
			task, ok := m.Store.Find(t.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("task #%d is not on the current page", t.ID)}
			}
			m.beginEdit(task)
			return commands.Result{Message: fmt.Sprintf("editing task #%d", task.ID)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			if err := m.requireService(); err != nil {
				return commands.Result{}, err
			}
			m, out = m.deleteTask(t.ID)
			return commands.Result{Message: fmt.Sprintf("deleting task #%d", t.ID)}, nil
		},
		Page: func(p commands.PageArgs) (commands.Result, error) {
			return gotoPage(p.Page, "requested")
		},
		Next: func() (commands.Result, error) {
			return gotoPage(m.Store.Page+1, "last")
		},
		Prev: func() (commands.Result, error) {
			return gotoPage(m.Store.Page-1, "first")
		},
		Refresh: func() (commands.Result, error) {
			if err := m.requireService(); err != nil {
				return commands.Result{}, err
			}
			m, out = m.fetchCurrentPage()
			return commands.Result{Message: fmt.Sprintf("refreshing page %d", m.Store.Page)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, out
	}
	m.Status = StatusBar{Text: res.Message}
	return m, out
}

func (m Model) requireService() error {
	if m.svc == nil {
		return &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no task service configured"}
	}
	return nil
}
