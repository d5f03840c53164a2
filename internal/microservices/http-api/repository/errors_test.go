package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	t.Run("RecordNotFound", func(t *testing.T) {
		assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	})

	t.Run("MalformedKeyIsNotFound", func(t *testing.T) {
		err := fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "r1"`})
		assert.ErrorIs(t, translate(err), ErrNotFound)
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrAlreadyExists)
	})

	t.Run("OtherErrorsPassThrough", func(t *testing.T) {
		fk := &pgconn.PgError{Code: "23503"}
		assert.Same(t, fk, translate(fk))

		boom := errors.New("connection refused")
		assert.Equal(t, boom, translate(boom))
	})
}
