package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"todoapi/config"
	"todoapi/infras/jwt"
	jwtMocks "todoapi/infras/jwt/mocks"
	"todoapi/infras/otel/mocks"
	userMocks "todoapi/internal/domains/user/mocks"
	"todoapi/internal/domains/user/model"
	"todoapi/internal/domains/user/model/dto"
	"todoapi/internal/domains/user/service"
	"todoapi/shared/failure"
	"todoapi/shared/password"
)

func strPtr(s string) *string {
	return &s
}

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		want      dto.RegisterResponse
	}{
		{
			name: "successful registration",
			req: dto.RegisterRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) (int, error) {
						assert.Equal(t, "alice", user.Name)
						assert.NotEqual(t, "secret", user.Password)
						assert.NoError(t, password.Verify("secret", user.Password))

						return 1, nil
					})
			},
			wantErr: false,
			want: dto.RegisterResponse{
				ID:   1,
				Name: "alice",
			},
		},
		{
			name: "name already taken",
			req: dto.RegisterRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "exist check error",
			req: dto.RegisterRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "concurrent register loses to unique constraint",
			req: dto.RegisterRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(0, &pq.Error{Code: "23505"})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req: dto.RegisterRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(0, errors.New("insert error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Register(context.Background(), tt.req)

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

func TestUserService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel, mockJWT)

	hashedPassword, err := password.Hash("secret")
	assert.NoError(t, err)

	validUser := model.User{
		ID:       1,
		Name:     "alice",
		Password: hashedPassword,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(1, "alice").
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						TokenType:    "Bearer",
					}, nil)
			},
			wantErr: false,
		},
		{
			name: "unknown name",
			req: dto.LoginRequest{
				Name:     "nobody",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Name:     "alice",
				Password: "wrong",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			req: dto.LoginRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "token generation error",
			req: dto.LoginRequest{
				Name:     "alice",
				Password: "secret",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(1, "alice").
					Return(nil, errors.New("signing error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", result.AccessToken)
				assert.Equal(t, "refresh-token", result.RefreshToken)
			}
		})
	}
}

func TestUserService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel, mockJWT)

	t.Run("successful refresh", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
			}, nil)

		result, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "valid-refresh-token",
		})

		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", result.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("bad-token").
			Return(nil, errors.New("invalid token"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "bad-token",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		id        int
		setupMock func()
		wantErr   bool
		wantCode  int
		want      dto.UserResponse
	}{
		{
			name: "name only update leaves password untouched",
			req: dto.UpdateUserRequest{
				Name: strPtr("alice2"),
			},
			id: 1,
			setupMock: func() {
				mockRepo.EXPECT().
					UpdateReturning(gomock.Any(), map[string]any{"name": "alice2"}, 1).
					Return(model.User{ID: 1, Name: "alice2", Password: "hashed"}, nil)
			},
			wantErr: false,
			want: dto.UserResponse{
				ID:   1,
				Name: "alice2",
			},
		},
		{
			name: "password update is hashed before storage",
			req: dto.UpdateUserRequest{
				Password: strPtr("newsecret"),
			},
			id: 1,
			setupMock: func() {
				mockRepo.EXPECT().
					UpdateReturning(gomock.Any(), gomock.Any(), 1).
					DoAndReturn(func(_ context.Context, fields map[string]any, id int) (model.User, error) {
						stored, ok := fields["password"].(string)
						assert.True(t, ok)
						assert.NotEqual(t, "newsecret", stored)
						assert.NoError(t, password.Verify("newsecret", stored))
						assert.NotContains(t, fields, "name")

						return model.User{ID: 1, Name: "alice", Password: stored}, nil
					})
			},
			wantErr: false,
			want: dto.UserResponse{
				ID:   1,
				Name: "alice",
			},
		},
		{
			name: "empty update request",
			req:  dto.UpdateUserRequest{},
			id:   1,
			setupMock: func() {
				// Validation fails before the repository is touched
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user not found",
			req: dto.UpdateUserRequest{
				Name: strPtr("alice2"),
			},
			id: 99,
			setupMock: func() {
				mockRepo.EXPECT().
					UpdateReturning(gomock.Any(), gomock.Any(), 99).
					Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req: dto.UpdateUserRequest{
				Name: strPtr("alice2"),
			},
			id: 1,
			setupMock: func() {
				mockRepo.EXPECT().
					UpdateReturning(gomock.Any(), gomock.Any(), 1).
					Return(model.User{}, errors.New("database error"))
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

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel, mockJWT)

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
			name: "user not found",
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
