package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteRepository struct {
	db *sql.DB
	q  queryer
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db, q: db}, nil
}

// OpenSQLite opens path, applies migrations and returns the repository.
// Use ":memory:" for a throwaway fixture set.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// each pooled connection gets its own :memory: database
		db.SetMaxOpenConns(1)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// withTx returns a repository whose statements run inside tx.
func (r *SQLiteRepository) withTx(tx *sql.Tx) *SQLiteRepository {
	return &SQLiteRepository{db: r.db, q: tx}
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, in Todo) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO todos (id, user_id, title, completed)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.UserID, in.Title, boolInt(in.Completed),
	)
	return err
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id int) (Todo, error) {
	row := r.q.QueryRowContext(ctx, `SELECT id, user_id, title, completed FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return todo, nil
}

func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error) {
	query := `SELECT id, user_id, title, completed FROM todos`
	args := make([]any, 0, 3)
	query += whereClause(&args, filter)
	query += ` ORDER BY id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

// CountTodos ignores Limit and Offset.
func (r *SQLiteRepository) CountTodos(ctx context.Context, filter TodoListFilter) (int, error) {
	args := make([]any, 0, 1)
	query := `SELECT COUNT(*) FROM todos` + whereClause(&args, filter)
	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func whereClause(args *[]any, filter TodoListFilter) string {
	clauses := make([]string, 0, 1)
	if filter.UserID > 0 {
		clauses = append(clauses, "user_id = ?")
		*args = append(*args, filter.UserID)
	}
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (Todo, error) {
	var out Todo
	var completed int
	if err := s.Scan(&out.ID, &out.UserID, &out.Title, &completed); err != nil {
		return Todo{}, err
	}
	out.Completed = completed == 1
	return out, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
