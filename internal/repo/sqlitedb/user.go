package sqlitedb

import (
	"context"
	"time"

	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/repo/querybuild"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/sqlite"
)

type UserRepo struct {
	*sqlite.SQLite
}

func NewUserRepo(db *sqlite.SQLite) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	query, args, err := querybuild.InsertUser(r.Builder, user).ToSql()
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	if _, err = r.CtxGetter.DefaultTrOrDB(ctx, r.DB).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return errorsUtils.WrapPathErr(repoerrs.ErrAlreadyExists)
		}
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func (r *UserRepo) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	query, args, err := querybuild.SelectUser(r.Builder, name).ToSql()
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.User{}, errorsUtils.WrapPathErr(err)
		}
		return domain.User{}, errorsUtils.WrapPathErr(repoerrs.ErrNotFound)
	}

	var user domain.User
	var createdAt any
	if err := rows.Scan(&user.Name, &user.PasswordHash, &createdAt); err != nil {
		return domain.User{}, errorsUtils.WrapPathErr(err)
	}
	user.CreatedAt = toTime(createdAt)

	return user, nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.DateTime,
	time.RFC3339Nano,
}

// toTime accepts what the driver hands back for a DATETIME column: a
// time.Time when it recognises the stored text, the raw text otherwise.
func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
