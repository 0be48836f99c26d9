package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWrapTranslatesLockConflicts(t *testing.T) {
	for _, code := range []string{"40001", "40P01", "55P03"} {
		err := wrap("lock kardex pair", &pgconn.PgError{Code: code})
		assert.ErrorIs(t, err, domain.ErrConflict, code)
	}

	plain := errors.New("conexión cerrada")
	err := wrap("insert article", plain)
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, wrap("noop", nil))
}

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_session_open_admin"})
	assert.True(t, isUniqueViolation(err))
	assert.Equal(t, "uq_session_open_admin", violatedConstraint(err))
	assert.Equal(t, "", violatedConstraint(&pgconn.PgError{Code: "23503"}))
}
