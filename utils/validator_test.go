package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=2,max=10"`
	Role  string `validate:"omitempty,oneof=admin leader collaborator"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		Email: "user@example.com",
		Name:  "Ana",
		Role:  "leader",
	})
	assert.NoError(t, err)
}

func TestValidateStructReportsAllFailures(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		Email: "nope",
		Name:  "A",
		Role:  "boss",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "name must be at least 2 characters")
	assert.Contains(t, err.Error(), "role must be one of: admin leader collaborator")
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(sampleRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "name is required")
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, ParseInt("7", 0))
	assert.Equal(t, 5, ParseInt("", 5))
	assert.Equal(t, 5, ParseInt("abc", 5))
}
