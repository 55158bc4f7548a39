package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository errors
var (
	ErrLookupAmbiguous = errors.New("user lookup takes an id or an email, not both")
	ErrLookupEmpty     = errors.New("user lookup needs an id or an email")
	ErrInvalidUpdate   = errors.New("invalid user update")
	ErrInvalidJobPost  = errors.New("invalid job post")
)

// PostgreSQL SQLSTATE codes
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err comes from a unique constraint
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, sqlStateUniqueViolation) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyViolation reports whether err comes from a foreign key constraint
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, sqlStateForeignKeyViolation) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
