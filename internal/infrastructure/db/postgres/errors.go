package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/assignhub/assignment-api/internal/api/metrics"
	"github.com/assignhub/assignment-api/internal/core/domain"
)

// Postgres error classes (SQLSTATE prefixes).
const (
	classIntegrityViolation = "23"
	classConnectionFailure  = "08"
)

// translateError maps a raw store failure onto the typed repository error
// taxonomy. No driver error escapes this boundary untyped.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	translated := classify(err)
	metrics.RepositoryErrorsTotal.WithLabelValues(errorKind(translated)).Inc()
	return translated
}

func classify(err error) error {
	// Already typed (e.g. attribute lookups): pass through untouched.
	if errors.Is(err, domain.ErrAttributeNotFound) ||
		errors.Is(err, domain.ErrIntegrityViolation) ||
		errors.Is(err, domain.ErrConnection) ||
		errors.Is(err, domain.ErrRepository) {
		return err
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", domain.ErrIntegrityViolation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, classIntegrityViolation):
			return fmt.Errorf("%w: %s %s", domain.ErrIntegrityViolation, pgErr.Code, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, classConnectionFailure):
			return fmt.Errorf("%w: %s", domain.ErrConnection, pgErr.Code)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}

	return fmt.Errorf("%w: %v", domain.ErrRepository, err)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrIntegrityViolation):
		return "integrity"
	case errors.Is(err, domain.ErrAttributeNotFound):
		return "attribute"
	case errors.Is(err, domain.ErrConnection):
		return "connection"
	default:
		return "other"
	}
}
