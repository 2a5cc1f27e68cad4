package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
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
	"todoapi/internal/handlers/user"
	"todoapi/shared/password"
)

func newTestServer(t *testing.T) (*chi.Mux, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, &config.Config{}, mockOtel, mockJWT)
	handler := user.New(svc, mockOtel)

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockRepo, mockJWT
}

func TestRegister(t *testing.T) {
	router, mockRepo, _ := newTestServer(t)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(1, nil)

	body := []byte(`{"name": "alice", "password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(1), got["id"])
	assert.Equal(t, "alice", got["name"])
	assert.NotContains(t, got, "password")
}

func TestRegister_MissingFields(t *testing.T) {
	router, _, _ := newTestServer(t)

	body := []byte(`{"name": "alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_NameTaken(t *testing.T) {
	router, mockRepo, _ := newTestServer(t)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	body := []byte(`{"name": "alice", "password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	router, mockRepo, mockJWT := newTestServer(t)

	hashed, err := password.Hash("secret")
	assert.NoError(t, err)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.User{ID: 1, Name: "alice", Password: hashed}, nil)

	mockJWT.EXPECT().
		GenerateTokenPair(1, "alice").
		Return(&jwt.TokenPair{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			TokenType:    "Bearer",
			ExpiresIn:    900,
		}, nil)

	body := []byte(`{"name": "alice", "password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got dto.LoginResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "access-token", got.AccessToken)
	assert.Equal(t, "refresh-token", got.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	router, mockRepo, _ := newTestServer(t)

	hashed, err := password.Hash("secret")
	assert.NoError(t, err)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.User{ID: 1, Name: "alice", Password: hashed}, nil)

	body := []byte(`{"name": "alice", "password": "wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	router, _, mockJWT := newTestServer(t)

	mockJWT.EXPECT().
		RefreshTokens("valid-refresh-token").
		Return(&jwt.TokenPair{AccessToken: "new-access-token"}, nil)

	body := []byte(`{"refresh_token": "valid-refresh-token"}`)
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	router, mockRepo, _ := newTestServer(t)

	mockRepo.EXPECT().
		UpdateReturning(gomock.Any(), map[string]any{"name": "alice2"}, 1).
		Return(model.User{ID: 1, Name: "alice2", Password: "hashed"}, nil)

	body := []byte(`{"name": "alice2"}`)
	req := httptest.NewRequest(http.MethodPatch, "/user/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice2", got["name"])
	assert.NotContains(t, got, "password")
}

func TestUpdateUser_EmptyBody(t *testing.T) {
	router, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPatch, "/user/1", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_NotFound(t *testing.T) {
	router, mockRepo, _ := newTestServer(t)

	mockRepo.EXPECT().
		UpdateReturning(gomock.Any(), gomock.Any(), 99).
		Return(model.User{}, nil)

	body := []byte(`{"name": "alice2"}`)
	req := httptest.NewRequest(http.MethodPatch, "/user/99", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	router, mockRepo, _ := newTestServer(t)

	mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User successfully deleted", rec.Body.String())
}

func TestDeleteUser_NotFound(t *testing.T) {
	router, mockRepo, _ := newTestServer(t)

	mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(int64(0), nil)

	req := httptest.NewRequest(http.MethodDelete, "/users/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser_InvalidID(t *testing.T) {
	router, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/users/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
