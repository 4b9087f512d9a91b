package database

import (
	"database/sql"

	"github.com/example/wordquiz/internal/apperr"
)

// requireRow turns "no rows affected" into a NotFound error.
func requireRow(res sql.Result, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("failed to get rows affected", err)
	}
	if n == 0 {
		return apperr.NotFound(format, args...)
	}
	return nil
}
