package service

import (
	"errors"
	"fmt"

	"github.com/dukerupert/shelf/internal/domain"
)

// notFound wraps a not-found sentinel with an id-bearing message.
func notFound(sentinel error, op, format string, args ...interface{}) error {
	return domain.WrapError(sentinel, domain.ENOTFOUND, op, fmt.Sprintf(format, args...))
}

// rejected wraps a sentinel that keeps its own code.
func rejected(sentinel *domain.Error, op, format string, args ...interface{}) error {
	return domain.WrapError(sentinel, sentinel.Code, op, fmt.Sprintf(format, args...))
}

// txError passes domain errors raised inside a transaction through unchanged
// and wraps everything else as internal.
func txError(err error, op, message string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(err, op, message)
}
