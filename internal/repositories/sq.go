package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ErrBadQuery = errors.New("bad query")

// SQLSTATE classes a retry cannot fix: data exceptions, integrity constraint
// violations, syntax or access errors.
var permanentClasses = map[string]struct{}{
	"22": {},
	"23": {},
	"42": {},
}

// IsPermanent reports store errors that must not be retried.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBadQuery) || errors.Is(err, context.Canceled) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		_, ok := permanentClasses[pgErr.Code[:2]]
		return ok
	}
	return false
}
