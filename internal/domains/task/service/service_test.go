package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"todoapi/config"
	"todoapi/infras/otel/mocks"
	taskMocks "todoapi/internal/domains/task/mocks"
	"todoapi/internal/domains/task/model"
	"todoapi/internal/domains/task/model/dto"
	"todoapi/internal/domains/task/service"
	gDto "todoapi/shared/dto"
	"todoapi/shared/failure"
)

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func TestTaskService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := taskMocks.NewMockTask(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateTaskRequest
		setupMock func()
		wantErr   bool
		want      dto.TaskResponse
	}{
		{
			name: "successful creation",
			req: dto.CreateTaskRequest{
				Title:       strPtr("Buy groceries"),
				Description: strPtr("milk and eggs"),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(1, nil)
			},
			wantErr: false,
			want: dto.TaskResponse{
				ID:          1,
				Title:       "Buy groceries",
				Completed:   false,
				Description: "milk and eggs",
			},
		},
		{
			name: "empty body inserts defaults",
			req:  dto.CreateTaskRequest{},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), model.Task{Title: "Untitled"}).
					Return(2, nil)
			},
			wantErr: false,
			want: dto.TaskResponse{
				ID:    2,
				Title: "Untitled",
			},
		},
		{
			name: "repository error",
			req: dto.CreateTaskRequest{
				Title: strPtr("Buy groceries"),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, result)
			}
		})
	}
}

func TestTaskService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := taskMocks.NewMockTask(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "successful get all",
			setupMock: func() {
				tasks := []model.Task{
					{ID: 1, Title: "Buy groceries", Completed: false, Description: "milk"},
					{ID: 2, Title: "Walk the dog", Completed: true, Description: ""},
				}

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tasks, nil)
			},
			wantErr: false,
			wantLen: 2,
		},
		{
			name: "no rows yields empty slice",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Task{}, nil)
			},
			wantErr: false,
			wantLen: 0,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("get all error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.wantLen)
			}
		})
	}
}

func TestTaskService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := taskMocks.NewMockTask(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel)

	task := model.Task{
		ID:          1,
		Title:       "Buy groceries",
		Completed:   false,
		Description: "milk and eggs",
	}

	tests := []struct {
		name      string
		id        int
		setupMock func()
		wantErr   bool
		wantCode  int
		wantID    int
	}{
		{
			name: "successful get",
			id:   1,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(task, nil)
			},
			wantErr: false,
			wantID:  1,
		},
		{
			name: "task not found",
			id:   99,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Task{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			id:   1,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Task{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, result.ID)
			}
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := taskMocks.NewMockTask(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdateTaskRequest
		id        int
		setupMock func()
		wantErr   bool
		wantCode  int
		want      dto.TaskResponse
	}{
		{
			name: "successful update",
			req: dto.UpdateTaskRequest{
				Completed: boolPtr(true),
			},
			id: 1,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), map[string]any{"completed": true}, gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Task{ID: 1, Title: "Buy groceries", Completed: true}, nil)
			},
			wantErr: false,
			want: dto.TaskResponse{
				ID:        1,
				Title:     "Buy groceries",
				Completed: true,
			},
		},
		{
			name: "empty update request",
			req:  dto.UpdateTaskRequest{},
			id:   1,
			setupMock: func() {
				// Validation fails before the repository is touched
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "task not found",
			req: dto.UpdateTaskRequest{
				Title: strPtr("Updated Title"),
			},
			id: 99,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			req: dto.UpdateTaskRequest{
				Title: strPtr("Updated Title"),
			},
			id: 1,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("update error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "row deleted between update and reread",
			req: dto.UpdateTaskRequest{
				Completed: boolPtr(true),
			},
			id: 1,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Task{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "reread error after update",
			req: dto.UpdateTaskRequest{
				Title: strPtr("Updated Title"),
			},
			id: 1,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Task{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Update(context.Background(), tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, result)
			}
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := taskMocks.NewMockTask(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel)

	tests := []struct {
		name      string
		id        int
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			id:   1,
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
			wantErr: false,
		},
		{
			name: "task not found",
			id:   99,
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "delete error",
			id:   1,
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("delete error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
