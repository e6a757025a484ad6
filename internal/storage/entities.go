package storage

// Todo is a fixture row served by the placeholder server.
type Todo struct {
	ID        int
	UserID    int
	Title     string
	Completed bool
}

// TodoListFilter narrows ListTodos and CountTodos. Zero values mean "no filter".
type TodoListFilter struct {
	UserID int
	Limit  int
	Offset int
}
