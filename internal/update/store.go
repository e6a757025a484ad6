package update

import (
	"github.com/sandeepkv93/taskpager/internal/model"
)

// TaskStore is the coordinator's view of the remote collection: the current
// page of tasks, the remote total, the page number and the task being edited.
// Every mutation goes through one of its transitions.
type TaskStore struct {
	Tasks    []model.Task
	Editing  *model.Task
	Total    int
	Page     int
	PageSize int
}

func NewTaskStore(pageSize int) TaskStore {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	return TaskStore{Page: 1, PageSize: pageSize}
}

func (s TaskStore) PageCount() int {
	return model.PageCount(s.Total, s.PageSize)
}

// Visible is the slice the table shows, never more than PageSize rows.
func (s TaskStore) Visible() []model.Task {
	if len(s.Tasks) > s.PageSize {
		return s.Tasks[:s.PageSize]
	}
	return s.Tasks
}

func (s TaskStore) Find(id int) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// SetPage clamps page into [1, PageCount] and reports whether it changed.
func (s *TaskStore) SetPage(page int) bool {
	page = model.ClampPage(page, s.Total, s.PageSize)
	if page == s.Page {
		return false
	}
	s.Page = page
	return true
}

// ApplyPage replaces the list with a fetched page. Results for any page other
// than the current one are stale and ignored.
func (s *TaskStore) ApplyPage(page int, result model.Page) bool {
	if page != s.Page {
		return false
	}
	s.Tasks = append([]model.Task(nil), result.Tasks...)
	s.Total = max(result.Total, 0)
	return true
}

// ApplyCreated prepends the new task. The page may temporarily hold PageSize+1 rows.
func (s *TaskStore) ApplyCreated(t model.Task) {
	next := make([]model.Task, 0, len(s.Tasks)+1)
	next = append(next, t)
	s.Tasks = append(next, s.Tasks...)
	s.Total++
}

// ApplyUpdated merges the echoed patch into the task with id and ends its edit.
func (s *TaskStore) ApplyUpdated(id int, patch model.TaskPatch) bool {
	found := false
	next := make([]model.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.ID == id {
			t = patch.Apply(t)
			found = true
		}
		next[i] = t
	}
	s.Tasks = next
	if s.Editing != nil && s.Editing.ID == id {
		s.Editing = nil
	}
	return found
}

// ApplyDeleted removes the task with id. Total only drops when a row was removed,
// and Page is pulled back if the smaller total no longer reaches it.
func (s *TaskStore) ApplyDeleted(id int) bool {
	next := make([]model.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	removed := len(next) != len(s.Tasks)
	s.Tasks = next
	if removed && s.Total > 0 {
		s.Total--
	}
	s.Page = model.ClampPage(s.Page, s.Total, s.PageSize)
	return removed
}

// RestorePage moves back to page without touching the held rows.
func (s *TaskStore) RestorePage(page int) {
	s.Page = model.ClampPage(page, s.Total, s.PageSize)
}

// BeginEdit stores a copy so later list changes do not leak into the form.
func (s *TaskStore) BeginEdit(t model.Task) {
	snapshot := t
	s.Editing = &snapshot
}

func (s *TaskStore) CancelEdit() {
	s.Editing = nil
}
