package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	DefaultSeedCount = 200
	todosPerUser     = 20
)

var seedWords = []string{
	"delectus", "aut", "autem", "quis", "ut", "nam", "facilis", "et", "officia",
	"qui", "fugiat", "veniam", "minus", "laboriosam", "mollitia", "illo", "expedita",
	"quo", "adipisci", "enim", "quam", "voluptas", "ratione", "accusamus", "rerum",
	"vero", "molestiae", "sunt", "nesciunt", "dolorem", "repellendus", "suscipit",
}

// Seed fills an empty todos table with n deterministic rows and returns how many
// were inserted. A non-empty table is left untouched.
func (r *SQLiteRepository) Seed(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		n = DefaultSeedCount
	}
	existing, err := r.CountTodos(ctx, TodoListFilter{})
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	txRepo := r.withTx(tx)
	for i := 1; i <= n; i++ {
		if err := txRepo.CreateTodo(ctx, SeedTodo(i)); err != nil {
			return 0, fmt.Errorf("seed todo %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return n, nil
}

// SeedTodo returns the fixture row for id.
func SeedTodo(id int) Todo {
	w := len(seedWords)
	title := strings.Join([]string{
		seedWords[(id*7)%w],
		seedWords[(id*13+3)%w],
		seedWords[(id*5+1)%w],
	}, " ")
	return Todo{
		ID:        id,
		UserID:    (id-1)/todosPerUser + 1,
		Title:     title,
		Completed: (id*37)%5 < 2,
	}
}
