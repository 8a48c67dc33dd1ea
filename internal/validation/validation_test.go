package validation

import (
	"errors"
	"testing"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `validate:"required"`
	Quantity int    `validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct("op", sample{Name: "Widget", Quantity: 0}))

	err := Struct("op", sample{Quantity: -1})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Contains(t, err.Error(), "Name is required")
	assert.Contains(t, err.Error(), "Quantity must satisfy gte=0")
}
