package dto_test

import (
	"testing"
	"todoapi/internal/domains/task/model"
	"todoapi/internal/domains/task/model/dto"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func TestCreateTaskRequest_ToModel(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateTaskRequest
		expected model.Task
	}{
		{
			name: "empty body takes defaults",
			req:  dto.CreateTaskRequest{},
			expected: model.Task{
				Title:       "Untitled",
				Completed:   false,
				Description: "",
			},
		},
		{
			name: "all fields supplied",
			req: dto.CreateTaskRequest{
				Title:       strPtr("Buy groceries"),
				Completed:   boolPtr(true),
				Description: strPtr("milk and eggs"),
			},
			expected: model.Task{
				Title:       "Buy groceries",
				Completed:   true,
				Description: "milk and eggs",
			},
		},
		{
			name: "partial body keeps defaults for the rest",
			req: dto.CreateTaskRequest{
				Title: strPtr("Buy groceries"),
			},
			expected: model.Task{
				Title:       "Buy groceries",
				Completed:   false,
				Description: "",
			},
		},
		{
			name: "explicit empty title overrides the default",
			req: dto.CreateTaskRequest{
				Title: strPtr(""),
			},
			expected: model.Task{
				Title:       "",
				Completed:   false,
				Description: "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.ToModel())
		})
	}
}

func TestUpdateTaskRequest_Empty(t *testing.T) {
	assert.True(t, (&dto.UpdateTaskRequest{}).Empty())

	assert.False(t, (&dto.UpdateTaskRequest{Title: strPtr("x")}).Empty())
	assert.False(t, (&dto.UpdateTaskRequest{Completed: boolPtr(false)}).Empty())
	assert.False(t, (&dto.UpdateTaskRequest{Description: strPtr("")}).Empty())
}

func TestTaskResponse_FromModel(t *testing.T) {
	task := model.Task{
		ID:          7,
		Title:       "Buy groceries",
		Completed:   true,
		Description: "milk and eggs",
	}

	var res dto.TaskResponse
	res.FromModel(task)

	assert.Equal(t, dto.TaskResponse{
		ID:          7,
		Title:       "Buy groceries",
		Completed:   true,
		Description: "milk and eggs",
	}, res)
}

func TestFromModels(t *testing.T) {
	models := []model.Task{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Completed: true},
	}

	responses := dto.FromModels(models)

	assert.Len(t, responses, 2)
	assert.Equal(t, 1, responses[0].ID)
	assert.Equal(t, "b", responses[1].Title)
	assert.True(t, responses[1].Completed)

	assert.Empty(t, dto.FromModels(nil))
}
