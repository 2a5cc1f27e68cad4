package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"todoapi/infras/otel"
	"todoapi/infras/postgres"
	"todoapi/internal/domains/user/model"
	"todoapi/shared"
	"todoapi/shared/constant"
	gDto "todoapi/shared/dto"
	"todoapi/shared/logger"
	gRepo "todoapi/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) (int, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	UpdateReturning(ctx context.Context, fields map[string]any, id int) (model.User, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateReturning applies the column/value map to the given id and reads the
// row back, both inside one transaction so no concurrent delete can slip
// between the two statements. A missing id yields the zero User.
func (repo *repositoryImpl) UpdateReturning(ctx context.Context, fields map[string]any, id int) (model.User, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.UpdateReturning")
	defer scope.End()

	var user model.User

	tx, err := repo.db.Write.Beginx()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return user, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	rows, err := repo.UpdateTx(ctx, tx, fields, filter)
	if err != nil {
		return user, err //nolint:wrapcheck
	}

	if rows == 0 {
		return user, nil
	}

	user, err = repo.GetTx(ctx, tx, filter)
	if err != nil {
		return user, err //nolint:wrapcheck
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return user, fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return user, nil
}
