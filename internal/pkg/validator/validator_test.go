package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=2"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "a@b.co", Name: "Ada"}))

	errs := Validate(sample{Email: "nope"})
	assert.Equal(t, "email", errs["Email"])
	assert.Equal(t, "required", errs["Name"])
}
