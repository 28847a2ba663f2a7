package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(newID()))
	assert.False(t, ValidID("507f1f77bcf86cd799439011"))
	assert.False(t, ValidID(""))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestOrEmpty(t *testing.T) {
	assert.Equal(t, []string{}, orEmpty(nil))
	assert.Equal(t, []string{"a"}, orEmpty([]string{"a"}))
}
