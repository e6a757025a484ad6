package api

import (
	"github.com/sandeepkv93/taskpager/internal/model"
)

// todoRecord is the list representation served by the remote collection.
type todoRecord struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (r todoRecord) toTask(synth Synthesizer) model.Task {
	priority, due := synth.Synthesize(r.ID)
	return model.Task{
		ID:       r.ID,
		Title:    r.Title,
		Priority: priority,
		DueDate:  due,
		Status:   r.Completed,
	}
}

// echoRecord is whatever a write call answers with. Every field is optional.
type echoRecord struct {
	ID        *int    `json:"id"`
	Title     *string `json:"title"`
	Priority  *string `json:"priority"`
	DueDate   *string `json:"dueDate"`
	Status    *bool   `json:"status"`
	Completed *bool   `json:"completed"`
}

func (e echoRecord) patch() model.TaskPatch {
	var p model.TaskPatch
	p.Title = e.Title
	p.DueDate = e.DueDate
	if e.Priority != nil {
		if priority := model.Priority(*e.Priority); priority.IsValid() {
			p.Priority = &priority
		}
	}
	switch {
	case e.Status != nil:
		p.Status = e.Status
	case e.Completed != nil:
		p.Status = e.Completed
	}
	return p
}

// restrict drops echoed fields that were not part of sent.
func restrict(echo, sent model.TaskPatch) model.TaskPatch {
	if sent.Title == nil {
		echo.Title = nil
	}
	if sent.Priority == nil {
		echo.Priority = nil
	}
	if sent.DueDate == nil {
		echo.DueDate = nil
	}
	if sent.Status == nil {
		echo.Status = nil
	}
	return echo
}
