package dto

import (
	"todoapi/internal/domains/task/model"
)

// CreateTaskRequest accepts a fully optional body; absent fields take the
// documented defaults before the row is inserted, never NULL.
type CreateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=255"`
	Completed   *bool   `json:"completed"   validate:"omitempty"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (c *CreateTaskRequest) ToModel() model.Task {
	task := model.Task{
		Title:       model.DefaultTitle,
		Completed:   false,
		Description: model.DefaultDescription,
	}

	if c.Title != nil {
		task.Title = *c.Title
	}

	if c.Completed != nil {
		task.Completed = *c.Completed
	}

	if c.Description != nil {
		task.Description = *c.Description
	}

	return task
}

// UpdateTaskRequest carries pointer fields so an omitted field can be told
// apart from an explicit zero; omitted fields keep their stored value.
type UpdateTaskRequest struct {
	Title       *string `db:"title"       json:"title"       validate:"omitempty,max=255"`
	Completed   *bool   `db:"completed"   json:"completed"   validate:"omitempty"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=255"`
}

func (u *UpdateTaskRequest) Empty() bool {
	return u.Title == nil && u.Completed == nil && u.Description == nil
}

type TaskResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

func (r *TaskResponse) FromModel(model model.Task) {
	r.ID = model.ID
	r.Title = model.Title
	r.Completed = model.Completed
	r.Description = model.Description
}

func FromModels(models []model.Task) []TaskResponse {
	tasks := make([]TaskResponse, len(models))
	for i, mod := range models {
		tasks[i].FromModel(mod)
	}

	return tasks
}
