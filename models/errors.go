package models

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a disk or tire lookup misses.
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrSlugExists    = errors.New("slug already exists")
	ErrArticleExists = errors.New("article already exists")
	ErrEmailExists   = errors.New("email already exists")

	// ErrEmptySlug is returned by save hooks when nothing slug-worthy is left
	// after normalising the source fields.
	ErrEmptySlug = errors.New("slug cannot be derived from empty fields")

	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

const uniqueViolation = "23505"
const foreignKeyViolation = "23503"

// translateUnique maps a PostgreSQL unique violation to one of the sentinel
// errors, keyed by a suffix of the violated index name. Unmatched errors are
// returned unchanged.
func translateUnique(err error, bySuffix map[string]error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		for suffix, sentinel := range bySuffix {
			if strings.HasSuffix(pqErr.Constraint, suffix) || strings.Contains(pqErr.Detail, "("+strings.TrimPrefix(suffix, "_")+")") {
				return sentinel
			}
		}
	}
	return err
}

// isForeignKeyViolation reports whether err is a PostgreSQL FK violation.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
