// Package sqlite opens a single-file SQLite database for local use.
package sqlite

import (
	"database/sql"
	"time"

	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"

	"github.com/Masterminds/squirrel"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	_ "modernc.org/sqlite"
)

const pragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

type SQLite struct {
	Builder   squirrel.StatementBuilderType
	CtxGetter *trmsql.CtxGetter
	DB        *sql.DB
	TrManager *manager.Manager
}

func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	// one writer; pragmas are per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errorsUtils.WrapPathErr(err)
	}

	return &SQLite{
		Builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		CtxGetter: trmsql.DefaultCtxGetter,
		DB:        db,
		TrManager: manager.Must(trmsql.NewDefaultFactory(db)),
	}, nil
}

func (s *SQLite) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
