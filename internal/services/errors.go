package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueViolation recognizes unique-constraint failures from the
// database boundary. Concurrent creates can slip past the pre-insert
// existence checks in this package and end up here.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (tests) reports unique violations as plain strings.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
