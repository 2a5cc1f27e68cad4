package model

const (
	TableName  = "todos"
	EntityName = "task"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldCompleted   = "completed"
	FieldDescription = "description"
)

const (
	DefaultTitle       = "Untitled"
	DefaultDescription = ""
)

type Task struct {
	ID          int    `db:"id"`
	Title       string `db:"title"`
	Completed   bool   `db:"completed"`
	Description string `db:"description"`
}
