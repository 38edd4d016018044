// Package querybuild holds the squirrel statements shared by the Postgres
// and SQLite repositories.
package querybuild

import (
	"github.com/Egor213/LogKeeper/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

const (
	RecordsTable = "access_logs"
	UsersTable   = "users"
)

// InsertChunkSize bounds the rows of one INSERT; SQLite caps bound
// parameters per statement.
const InsertChunkSize = 100

var RecordColumns = []string{"host", "identity", "remote_user", "time", "request_line", "status", "size"}

var UserColumns = []string{"name", "password_hash", "created_at"}

func InsertRecords(b sq.StatementBuilderType, userName string, records []domain.LogRecord) sq.InsertBuilder {
	q := b.Insert(RecordsTable).Columns(append([]string{"user_name"}, RecordColumns...)...)
	for _, r := range records {
		q = q.Values(userName, r.Host, r.Identity, r.User, r.Timestamp, r.RequestLine, r.Status, r.Size)
	}
	return q
}

func SelectRecords(b sq.StatementBuilderType, userName string) sq.SelectBuilder {
	return b.Select(RecordColumns...).
		From(RecordsTable).
		Where(sq.Eq{"user_name": userName}).
		OrderBy("id")
}

func DeleteRecords(b sq.StatementBuilderType, userName string) sq.DeleteBuilder {
	return b.Delete(RecordsTable).Where(sq.Eq{"user_name": userName})
}

func InsertUser(b sq.StatementBuilderType, u *domain.User) sq.InsertBuilder {
	return b.Insert(UsersTable).
		Columns(UserColumns...).
		Values(u.Name, u.PasswordHash, u.CreatedAt)
}

func SelectUser(b sq.StatementBuilderType, name string) sq.SelectBuilder {
	return b.Select(UserColumns...).
		From(UsersTable).
		Where(sq.Eq{"name": name})
}

// Chunks splits records into slices of at most size elements.
func Chunks(records []domain.LogRecord, size int) [][]domain.LogRecord {
	var out [][]domain.LogRecord
	for len(records) > size {
		out = append(out, records[:size])
		records = records[size:]
	}
	if len(records) > 0 {
		out = append(out, records)
	}
	return out
}
