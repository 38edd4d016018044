package pgdb

import (
	"context"

	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/repo/querybuild"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

type RecordRepo struct {
	*postgres.Postgres
}

func NewRecordRepo(pg *postgres.Postgres) *RecordRepo {
	return &RecordRepo{pg}
}

// SaveRecords inserts in chunks. Call it inside TrManager.Do to keep the
// whole batch atomic.
func (r *RecordRepo) SaveRecords(ctx context.Context, userName string, records []domain.LogRecord) (int, error) {
	saved := 0
	for _, chunk := range querybuild.Chunks(records, querybuild.InsertChunkSize) {
		sql, args, err := querybuild.InsertRecords(r.Builder, userName, chunk).ToSql()
		if err != nil {
			return saved, errorsUtils.WrapPathErr(err)
		}

		tag, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
		if err != nil {
			if errorsUtils.IsForeignKeyViolation(err) {
				return saved, errorsUtils.WrapPathErr(repoerrs.ErrNotFound)
			}
			return saved, errorsUtils.WrapPathErr(err)
		}
		saved += int(tag.RowsAffected())
	}
	return saved, nil
}

func (r *RecordRepo) LoadRecords(ctx context.Context, userName string) ([]domain.LogRecord, error) {
	sql, args, err := querybuild.SelectRecords(r.Builder, userName).ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LogRecord])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return records, nil
}

func (r *RecordRepo) DeleteRecords(ctx context.Context, userName string) (int, error) {
	sql, args, err := querybuild.DeleteRecords(r.Builder, userName).ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	tag, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return int(tag.RowsAffected()), nil
}
