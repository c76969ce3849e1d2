package db

import (
	stdErrors "errors"
	"strings"

	"github.com/pharmaware/pharmacare/pkg/errors"
	"gorm.io/gorm"
)

// Translate maps storage-engine errors onto the typed taxonomy. The sqlite
// driver exposes constraint failures only through the message text, so
// matching follows the strings the engine actually emits.
func Translate(err error, context string) error {
	if err == nil {
		return nil
	}
	if typed := errors.As(err); typed != nil {
		return err
	}
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(errors.CodeNotFound, err, context)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return errors.Wrap(errors.CodeUniqueness, err, context)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errors.Wrap(errors.CodeReferential, err, context)
	case strings.Contains(msg, "CHECK constraint failed"):
		return errors.Wrap(errors.CodeValidation, err, context)
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "database table is locked"):
		return errors.Wrap(errors.CodeConcurrency, err, context)
	}
	return errors.Wrap(errors.CodeInternal, err, context)
}

// IsUniqueViolation reports whether the error is a sqlite unique-constraint
// failure, optionally on a specific column ("table.column").
func IsUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if column == "" {
		return true
	}
	return strings.Contains(msg, column)
}
