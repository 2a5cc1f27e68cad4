package service

import (
	"context"
	"fmt"
	"todoapi/config"
	"todoapi/infras/otel"
	"todoapi/internal/domains/task/model"
	"todoapi/internal/domains/task/model/dto"
	"todoapi/internal/domains/task/repository"
	"todoapi/shared"
	"todoapi/shared/constant"
	gDto "todoapi/shared/dto"
	"todoapi/shared/failure"

	"github.com/rs/zerolog/log"
)

type Task interface {
	Create(ctx context.Context, req dto.CreateTaskRequest) (dto.TaskResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.TaskResponse, error)
	Get(ctx context.Context, id int) (dto.TaskResponse, error)
	Update(ctx context.Context, req dto.UpdateTaskRequest, id int) (dto.TaskResponse, error)
	Delete(ctx context.Context, id int) error
}

type serviceImpl struct {
	repo repository.Task
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Task, cfg *config.Config, otel otel.Otel) Task {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	task := req.ToModel()

	id, err := s.repo.Insert(ctx, task)
	if err != nil {
		log.Error().Err(err).Msg("failed to create task")

		return res, fmt.Errorf("failed to create task: %w", err)
	}

	task.ID = id
	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tasks")

		return res, fmt.Errorf("failed to get tasks: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id int) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	task, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get task")

		return res, fmt.Errorf("failed to get task: %w", err)
	}

	if task.ID == 0 {
		return res, failure.NotFound("task not found") // nolint:wrapcheck
	}

	res.FromModel(task)

	return res, nil
}

// Update applies only the fields present in the request. The keyed UPDATE
// reports zero affected rows for a missing id, which surfaces as not-found
// without a separate existence probe.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTaskRequest, id int) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	rows, err := s.repo.Update(ctx, shared.TransformFields(req), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update task")

		return res, fmt.Errorf("failed to update task: %w", err)
	}

	if rows == 0 {
		log.Error().Int("id", id).Msg("task not found")

		return res, failure.NotFound("task not found") // nolint:wrapcheck
	}

	task, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated task")

		return res, fmt.Errorf("failed to get updated task: %w", err)
	}

	// A concurrent delete can remove the row between the UPDATE and the
	// re-read, so a miss here is an error rather than a success.
	if task.ID == 0 {
		log.Error().Int("id", id).Msg("task missing after update")

		return res, fmt.Errorf("task %d missing after update", id)
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	rows, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete task")

		return fmt.Errorf("failed to delete task: %w", err)
	}

	if rows == 0 {
		log.Error().Int("id", id).Msg("task not found")

		return failure.NotFound("task not found") // nolint:wrapcheck
	}

	return nil
}
