package repository

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
)

// ErrDuplicateKey marks a unique-constraint violation surfaced by the database.
var ErrDuplicateKey = errors.New("duplicate key")

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
