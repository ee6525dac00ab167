package dberrors

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrResourceNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "club_members_pkey"}, apperrors.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperrors.ErrResourceNotFound},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, apperrors.ErrValidationFailed},
		{"bad uuid text", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, apperrors.ErrValidationFailed},
		{"connection", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, apperrors.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Translate(tt.err, "club"), tt.want)
		})
	}
}

func TestTranslate_PassThrough(t *testing.T) {
	assert.NoError(t, Translate(nil, "club"))

	plain := errors.New("boom")
	err := Translate(plain, "club")
	assert.ErrorIs(t, err, plain)
	assert.False(t, errors.Is(err, apperrors.ErrConflict))
}

func TestConstraintHelpers(t *testing.T) {
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "auth_users_email_key"}
	assert.True(t, IsDuplicateConstraintError(dup, ""))
	assert.True(t, IsDuplicateConstraintError(dup, "auth_users_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "other"))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.True(t, IsCheckViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, IsCheckViolation(errors.New("x")))
}
