package service

import (
	"context"
	"errors"
	"fmt"
	"todoapi/config"
	"todoapi/infras/jwt"
	"todoapi/infras/otel"
	"todoapi/internal/domains/user/model"
	"todoapi/internal/domains/user/model/dto"
	"todoapi/internal/domains/user/repository"
	"todoapi/shared"
	"todoapi/shared/constant"
	gDto "todoapi/shared/dto"
	"todoapi/shared/failure"
	"todoapi/shared/password"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type User interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id int) (dto.UserResponse, error)
	Delete(ctx context.Context, id int) error
}

type serviceImpl struct {
	repo       repository.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) User {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func filterByName(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.repo.Exist(ctx, filterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("name already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.repo.Insert(ctx, req.ToModel(hashedPassword))
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		// The pre-check above races with concurrent registers; the unique
		// constraint is authoritative.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("name already registered") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.ID = id
	res.Name = req.Name

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.repo.Get(ctx, filterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		log.Warn().Str("name", req.Name).Msg("login attempt with non-existent name")

		return res, failure.BadRequestFromString("invalid name or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("name", req.Name).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid name or password") // nolint:wrapcheck
	}

	tokens, err := s.jwtService.GenerateTokenPair(user.ID, user.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return res, fmt.Errorf("failed to generate token pair: %w", err)
	}

	res.TokenPair = *tokens

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokens, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh attempt with invalid token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.TokenPair = *tokens

	return res, nil
}

// Update preserves any field the request omits; a supplied password is
// re-hashed before it reaches the row.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id int) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	fields := shared.TransformFields(req)

	if req.Password != nil {
		hashedPassword, err := password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		fields[model.FieldPassword] = hashedPassword
	}

	user, err := s.repo.UpdateReturning(ctx, fields, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	if user.ID == 0 {
		log.Error().Int("id", id).Msg("user not found")

		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	rows, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	if rows == 0 {
		log.Error().Int("id", id).Msg("user not found")

		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	return nil
}
