// Package store is the data layer: every read and write of users, posts,
// tags and their associations goes through a Store.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column (post title, tag name) already holds the value.
	ErrDuplicate = errors.New("duplicate key")
)

// ValidationError reports a field that was absent, empty or too long.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// MaxNameLength bounds post titles and tag names (varchar(255) columns).
const MaxNameLength = 255

type Store struct {
	db *gorm.DB
}

// New wraps an opened database handle. The handle should be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func bounded(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if utf8.RuneCountInString(strings.TrimSpace(value)) > MaxNameLength {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", MaxNameLength)}
	}
	return nil
}

// translate maps GORM errors onto the store's error taxonomy. A foreign key
// violation means a referenced row disappeared under a concurrent delete.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
