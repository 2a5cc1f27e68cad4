package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sortModel struct {
	ID        int    `db:"id"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
}

func TestSortableColumn(t *testing.T) {
	repo := NewRepository[sortModel]("task", "todos", "id", nil, nil)

	tests := []struct {
		name   string
		sortBy string
		want   bool
	}{
		{name: "model column", sortBy: "title", want: true},
		{name: "primary column", sortBy: "id", want: true},
		{name: "unknown column", sortBy: "created_at", want: false},
		{name: "injection attempt", sortBy: "title; DROP TABLE todos", want: false},
		{name: "empty", sortBy: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.sortableColumn(tt.sortBy))
		})
	}
}
