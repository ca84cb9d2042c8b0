package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/wordhoard/internal/redact"
	"github.com/phrazzld/wordhoard/internal/store"
)

// SQLSTATE codes the snapshot tables can raise.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

type violation struct {
	sentinel error
	label    string
	column   bool // report ColumnName instead of ConstraintName
}

var violations = map[string]violation{
	uniqueViolationCode:     {store.ErrDuplicate, "unique", false},
	foreignKeyViolationCode: {store.ErrInvalidEntity, "foreign key", false},
	checkViolationCode:      {store.ErrInvalidEntity, "check", false},
	notNullViolationCode:    {store.ErrInvalidEntity, "not null", true},
}

// MapError translates driver errors into the store sentinels. Anything it
// does not recognise is returned redacted, since pgx can echo connection
// details.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	if pgErr, ok := asPgError(err); ok {
		if v, known := violations[pgErr.Code]; known {
			name := pgErr.ConstraintName
			if v.column {
				name = pgErr.ColumnName
			}
			return fmt.Errorf("%w: %s violation on %s", v.sentinel, v.label, name)
		}
	}
	return errors.New(redact.Error(err))
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool { return hasCode(err, uniqueViolationCode) }

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool { return hasCode(err, foreignKeyViolationCode) }

func hasCode(err error, code string) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == code
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
