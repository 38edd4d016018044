package sqlitedb

import (
	"context"

	"github.com/Egor213/LogKeeper/internal/domain"
	"github.com/Egor213/LogKeeper/internal/repo/querybuild"
	"github.com/Egor213/LogKeeper/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/sqlite"
)

type RecordRepo struct {
	*sqlite.SQLite
}

func NewRecordRepo(db *sqlite.SQLite) *RecordRepo {
	return &RecordRepo{db}
}

func (r *RecordRepo) SaveRecords(ctx context.Context, userName string, records []domain.LogRecord) (int, error) {
	saved := 0
	for _, chunk := range querybuild.Chunks(records, querybuild.InsertChunkSize) {
		query, args, err := querybuild.InsertRecords(r.Builder, userName, chunk).ToSql()
		if err != nil {
			return saved, errorsUtils.WrapPathErr(err)
		}

		res, err := r.CtxGetter.DefaultTrOrDB(ctx, r.DB).ExecContext(ctx, query, args...)
		if err != nil {
			if isForeignKeyViolation(err) {
				return saved, errorsUtils.WrapPathErr(repoerrs.ErrNotFound)
			}
			return saved, errorsUtils.WrapPathErr(err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return saved, errorsUtils.WrapPathErr(err)
		}
		saved += int(n)
	}
	return saved, nil
}

func (r *RecordRepo) LoadRecords(ctx context.Context, userName string) ([]domain.LogRecord, error) {
	query, args, err := querybuild.SelectRecords(r.Builder, userName).ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	records := []domain.LogRecord{}
	for rows.Next() {
		var rec domain.LogRecord
		if err := rows.Scan(&rec.Host, &rec.Identity, &rec.User, &rec.Timestamp, &rec.RequestLine, &rec.Status, &rec.Size); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return records, nil
}

func (r *RecordRepo) DeleteRecords(ctx context.Context, userName string) (int, error) {
	query, args, err := querybuild.DeleteRecords(r.Builder, userName).ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	res, err := r.CtxGetter.DefaultTrOrDB(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return int(n), nil
}
