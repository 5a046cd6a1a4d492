package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	classConnectionException = "08"

	constraintProductName = "products_name_key"
	constraintItemPair    = "order_items_order_product_key"
)

func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUnavailable распознаёт ошибки, после которых операцию можно повторить целиком.
func isUnavailable(err error) bool {
	if domain.IsUnavailableCause(err) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	code := pgCode(err)
	switch {
	case code == codeSerializationFailure, code == codeDeadlockDetected, code == codeAdminShutdown:
		return true
	case len(code) == 5 && code[:2] == classConnectionException:
		return true
	}
	return false
}

// classify переводит ошибку драйвера в доменную; доменные ошибки пропускаются как есть.
func classify(err error, operation string) error {
	if err == nil {
		return nil
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return domain.Canceled(err, operation)
	}
	if isUnavailable(err) {
		return domain.Unavailable(err, operation)
	}
	if isForeignKeyViolation(err) {
		return domain.WrapError(domain.KindConflict, err, "%s: referenced by existing order items", operation)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
