package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Sentinel tags for classifying service failures at the handler boundary.
var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("validation")
	// ErrUnauthorized indicates a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller may not touch this resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness/concurrency conflict.
	ErrConflict = errors.New("conflict")
	// ErrQuota indicates a tier limit was hit; pairs with a machine code.
	ErrQuota = errors.New("quota")
)

// ValidationError tags an error as a validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// NotFoundError tags an error as a missing resource.
func NotFoundError(msg string) error {
	return errors.Join(ErrNotFound, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as a conflict.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

const pgUniqueViolation = "23505"

// IsDuplicateKey reports whether err is a uniqueness violation, either from
// the driver or already mapped by GORM.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// QuotaError carries the machine-readable code returned with HTTP 402.
type QuotaError struct {
	Code    string
	Message string
}

func (e *QuotaError) Error() string { return e.Message }

func (e *QuotaError) Is(target error) bool { return target == ErrQuota }

const (
	CodeUsageLimitExceeded   = "USAGE_LIMIT_EXCEEDED"
	CodeProjectLimitExceeded = "PROJECT_LIMIT_EXCEEDED"
	CodeSubscriptionInactive = "SUBSCRIPTION_INACTIVE"
)
