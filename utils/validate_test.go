package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {

	type credentials struct {
		Login string `yaml:"login" validate:"required"`
		Pass  string `json:"pass,omitempty" validate:"required"`
		Note  string
	}

	assert.NoError(t, ValidateStruct(credentials{Login: "user", Pass: "secret"}))

	err := ValidateStruct(credentials{})
	assert.EqualError(t, err,
		"field 'login' failed validation 'required'; field 'pass' failed validation 'required'")
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	assert.Error(t, ValidateStruct("login"))
}
