// Package api talks to the remote /todos collection.
package api

import (
	"context"

	"github.com/sandeepkv93/taskpager/internal/model"
)

// Service is the remote task collection. The coordinator only depends on this
// interface; the fasthttp Client is one implementation.
type Service interface {
	// ListTasks returns one 1-based page and the collection total.
	// A missing or unparsable total is reported as the number of tasks returned.
	ListTasks(ctx context.Context, page, pageSize int) (model.Page, error)

	// CreateTask submits data and returns the created task with its assigned id.
	CreateTask(ctx context.Context, data model.TaskFormData) (model.Task, error)

	// UpdateTask sends patch and returns the fields the remote echoed back,
	// restricted to the fields that were sent.
	UpdateTask(ctx context.Context, id int, patch model.TaskPatch) (model.TaskPatch, error)

	// DeleteTask removes the task. Success is any 2xx status.
	DeleteTask(ctx context.Context, id int) error
}
