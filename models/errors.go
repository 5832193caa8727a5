package models

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// ErrAlreadySaved is returned when a (user, product) pair is saved twice.
var ErrAlreadySaved = errors.New("product already saved")

// IsUniqueViolation reports whether err is a unique-constraint violation.
// The unique constraints on categories.name and (user_id, product_id) are the
// correctness backstop for concurrent get-or-create, so callers resolve these
// by re-reading rather than failing.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsDataError reports whether err is a data exception such as a value
// overflowing its column size (SQLSTATE class 22).
func IsDataError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "22"
}

// IsIntegrityError reports whether err is an integrity-constraint violation
// (SQLSTATE class 23), unique violations included.
func IsIntegrityError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23"
}
