package repo

import (
	"context"

	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/repo/pgdb"
	"github.com/Egor213/LogKeeper/internal/repo/sqlitedb"
	"github.com/Egor213/LogKeeper/pkg/postgres"
	"github.com/Egor213/LogKeeper/pkg/sqlite"
)

// Record stores access-log records under a user name. LoadRecords returns
// them in insertion order.
type Record interface {
	SaveRecords(ctx context.Context, userName string, records []domain.LogRecord) (int, error)
	LoadRecords(ctx context.Context, userName string) ([]domain.LogRecord, error)
	DeleteRecords(ctx context.Context, userName string) (int, error)
}

type User interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByName(ctx context.Context, name string) (domain.User, error)
}

// TxManager runs fn in one transaction; repositories called with the ctx
// passed to fn join it.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Repositories struct {
	Record
	User
	TxManager
}

func NewPostgresRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Record:    pgdb.NewRecordRepo(pg),
		User:      pgdb.NewUserRepo(pg),
		TxManager: pg.TrManager,
	}
}

func NewSQLiteRepositories(db *sqlite.SQLite) *Repositories {
	return &Repositories{
		Record:    sqlitedb.NewRecordRepo(db),
		User:      sqlitedb.NewUserRepo(db),
		TxManager: db.TrManager,
	}
}
