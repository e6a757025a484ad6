package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTodo(ctx context.Context, in Todo) error
	GetTodo(ctx context.Context, id int) (Todo, error)
	ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error)
	CountTodos(ctx context.Context, filter TodoListFilter) (int, error)
	Seed(ctx context.Context, n int) (int, error)
}
