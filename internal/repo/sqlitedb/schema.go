package sqlitedb

import (
	"context"

	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"
	"github.com/Egor213/LogKeeper/pkg/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	name          TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS access_logs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_name    TEXT NOT NULL REFERENCES users (name) ON DELETE CASCADE,
	host         TEXT NOT NULL,
	identity     TEXT NOT NULL,
	remote_user  TEXT NOT NULL,
	time         TEXT NOT NULL,
	request_line TEXT NOT NULL,
	status       TEXT NOT NULL,
	size         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS access_logs_user_name_id_idx ON access_logs (user_name, id);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlite.SQLite) error {
	if _, err := db.DB.ExecContext(ctx, schema); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}
