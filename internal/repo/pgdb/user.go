package pgdb

import (
	"context"
	"errors"

	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/repo/querybuild"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pg *postgres.Postgres) *UserRepo {
	return &UserRepo{pg}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	sql, args, err := querybuild.InsertUser(r.Builder, user).ToSql()
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	if _, err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...); err != nil {
		if errorsUtils.IsUniqueViolation(err) {
			return errorsUtils.WrapPathErr(repoerrs.ErrAlreadyExists)
		}
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func (r *UserRepo) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	sql, args, err := querybuild.SelectUser(r.Builder, name).ToSql()
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, errorsUtils.WrapPathErr(repoerrs.ErrNotFound)
		}
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	return user, nil
}
