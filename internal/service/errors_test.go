package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{"name": "field required", "age": "must be greater than or equal to 0"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "validation failed: age: must be greater than or equal to 0; name: field required", err.Error())

	var ve *ValidationError
	wrapped := errors.Join(errors.New("ctx"), err)
	assert.True(t, errors.As(wrapped, &ve))
	assert.Len(t, ve.Fields, 2)

	assert.Equal(t, "validation failed", NewValidationError(nil).Error())
}

func TestClassifyDB(t *testing.T) {
	cause := errors.New("syntax error")
	err := classifyDB("list students", cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)

	assert.ErrorIs(t, classifyDB("get student", driver.ErrBadConn), ErrUnavailable)
	assert.ErrorIs(t, classifyDB("get student", context.DeadlineExceeded), ErrUnavailable)
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("collection closed")
	err := unavailable("list chunks", cause)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list chunks")
}
