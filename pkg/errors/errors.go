package errorsUtils

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeNotNullViolation    = "23502"
)

func Is(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func IsUniqueViolation(err error) bool {
	return Is(err, CodeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return Is(err, CodeForeignKeyViolation)
}

func IsNotNullViolation(err error) bool {
	return Is(err, CodeNotNullViolation)
}

// WrapPathErr prefixes err with the calling function and line.
func WrapPathErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[%s] %w", caller(2), err)
}

// WrapPathErrf is WrapPathErr with a message between the path and err.
func WrapPathErrf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[%s] %s: %w", caller(2), fmt.Sprintf(format, args...), err)
}

func caller(skip int) string {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", runtime.FuncForPC(pc).Name(), line)
}
