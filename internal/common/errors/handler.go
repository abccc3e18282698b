package errors

import (
	stderrors "errors"
	"net/http"
)

// Normalize turns any error into a *StandardError. Errors that already are (or
// wrap) a StandardError are returned as is; everything else becomes INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code onto the status returned to API clients.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeCompanyNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidFilterFormat, ErrCodeInvalidEvent:
		return http.StatusBadRequest
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeCatalogNotReady:
		return http.StatusServiceUnavailable
	case ErrCodeDataSourceLoadFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeCacheUnavailable:
		return http.StatusBadGateway
	case ErrCodeQueryTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound reports whether err carries COMPANY_NOT_FOUND.
func IsNotFound(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == ErrCodeCompanyNotFound
}
