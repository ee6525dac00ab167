package dberrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// IsDuplicateConstraintError reports whether err is a unique violation on the
// named constraint. An empty constraint name matches any unique violation.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// IsCheckViolation reports whether err is a CHECK or NOT NULL violation.
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		(pgErr.Code == pgerrcode.CheckViolation || pgErr.Code == pgerrcode.NotNullViolation)
}

// Translate maps a driver error onto the application error taxonomy.
// entity names the resource in the user-facing message.
func Translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError(entity + " not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return apperrors.NewCustomError(fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.ConstraintName),
				entity+" already exists")
		case pgErr.Code == pgerrcode.ForeignKeyViolation:
			return apperrors.NewResourceNotFoundError("referenced record for " + entity + " not found")
		case pgErr.Code == pgerrcode.CheckViolation, pgErr.Code == pgerrcode.NotNullViolation,
			pgErr.Code == pgerrcode.InvalidTextRepresentation:
			return apperrors.NewValidationError("invalid " + entity + " data")
		case pgerrcode.IsConnectionException(pgErr.Code), pgerrcode.IsInsufficientResources(pgErr.Code):
			return apperrors.NewUpstreamError("database unavailable", err)
		}
		return fmt.Errorf("error executing query on %s: %w", entity, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return apperrors.NewUpstreamError("database unavailable", err)
	}
	return fmt.Errorf("error executing query on %s: %w", entity, err)
}
