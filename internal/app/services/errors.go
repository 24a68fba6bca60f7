package services

import (
	"context"
	"errors"

	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// translateStoreError keeps the errors callers can act on and reports every
// other store failure as a transport error.
func translateStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, apperrors.ErrConstraintViolation,
		apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrPermissionDenied,
		apperrors.ErrValidationFailed,
		apperrors.ErrTransport,
		context.Canceled,
		context.DeadlineExceeded,
	) {
		return err
	}
	return apperrors.NewTransportError(op, err)
}

// isNotFound reports whether err means the record does not exist
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound)
}
