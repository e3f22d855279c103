package utils

import (
	"errors"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

var ErrorRecordNotFound = errors.New("record not found")

// Named pipeline failures. Callers match these with errors.Is so that
// "bad batch id" and "no processor for this carrier" stay distinguishable
// from generic failures.
var (
	ErrorUnsupportedProvider = errors.New("unsupported provider")
	ErrorBatchNotFound       = errors.New("batch not found")
	ErrorApprovalFailed      = errors.New("approval failed")
	ErrorDuplicateResource   = errors.New("duplicate resource")
)

// IsDuplicateKeyError reports whether err is a MySQL unique-constraint
// violation (1062). ValidateUnique runs a check-then-insert, so two
// concurrent creates can both pass the check; the insert that loses the
// race surfaces here.
func IsDuplicateKeyError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
