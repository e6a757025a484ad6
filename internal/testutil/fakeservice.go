// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandeepkv93/taskpager/internal/model"
)

// Call records one invocation of the fake.
type Call struct {
	Op       string
	Page     int
	PageSize int
	ID       int
	Form     model.TaskFormData
	Patch    model.TaskPatch
}

// FakeService is an in-memory api.Service. Like the public mock it echoes
// writes without storing them, so later list calls return the seeded data.
type FakeService struct {
	mu    sync.Mutex
	tasks []model.Task
	calls []Call

	// TotalOverride, when positive, replaces the reported total.
	TotalOverride int
	// NextID is the id handed to the next created task. Zero means len(tasks)+1.
	NextID int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewFakeService(tasks ...model.Task) *FakeService {
	return &FakeService{tasks: append([]model.Task(nil), tasks...)}
}

func (f *FakeService) ListTasks(_ context.Context, page, pageSize int) (model.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "list", Page: page, PageSize: pageSize})
	if f.ListErr != nil {
		return model.Page{}, f.ListErr
	}

	start := (page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	out := make([]model.Task, 0, pageSize)
	for i := start; i < len(f.tasks) && i < start+pageSize; i++ {
		out = append(out, f.tasks[i])
	}
	total := len(f.tasks)
	if f.TotalOverride > 0 {
		total = f.TotalOverride
	}
	return model.Page{Tasks: out, Total: total}, nil
}

func (f *FakeService) CreateTask(_ context.Context, data model.TaskFormData) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "create", Form: data})
	if f.CreateErr != nil {
		return model.Task{}, f.CreateErr
	}
	id := f.NextID
	if id <= 0 {
		id = len(f.tasks) + 1
	}
	return data.WithID(id), nil
}

func (f *FakeService) UpdateTask(_ context.Context, id int, patch model.TaskPatch) (model.TaskPatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "update", ID: id, Patch: patch})
	if f.UpdateErr != nil {
		return model.TaskPatch{}, f.UpdateErr
	}
	return patch, nil
}

func (f *FakeService) DeleteTask(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "delete", ID: id})
	return f.DeleteErr
}

// Calls returns the recorded calls for op, or all calls when op is empty.
func (f *FakeService) Calls(op string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, 0, len(f.calls))
	for _, c := range f.calls {
		if op == "" || c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// SampleTasks builds n valid tasks with ids 1..n.
func SampleTasks(n int) []model.Task {
	priorities := []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	out := make([]model.Task, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Task{
			ID:       i,
			Title:    fmt.Sprintf("task %d", i),
			Priority: priorities[(i-1)%len(priorities)],
			DueDate:  fmt.Sprintf("2024-06-%02d", (i-1)%28+1),
			Status:   i%2 == 0,
		})
	}
	return out
}
