package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"object id", "64b7f1c2a9e4d3b2c1a09f8e", true},
		{"upper case hex", "64B7F1C2A9E4D3B2C1A09F8E", false},
		{"mixed case hex", "64b7f1c2a9e4d3b2c1a09F8E", false},
		{"too short", "64b7f1c2a9e4d3b2c1a09f8", false},
		{"too long", "64b7f1c2a9e4d3b2c1a09f8e0", false},
		{"non hex", "64b7f1c2a9e4d3b2c1a09fzz", false},
		{"empty", "", false},
		{"uuid", "3f2504e0-4f89-11d3-9a0c-0305e82c3301", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidID(tt.input))
		})
	}
}

func TestNewID_IsValid(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 24)
	assert.True(t, IsValidID(id))
	assert.NotEqual(t, id, NewID())
}

func TestRequireIDs(t *testing.T) {
	valid := NewID()

	assert.NoError(t, RequireIDs("userId", valid, "jobId", valid))

	err := RequireIDs("userId", "nope", "jobId", valid)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "invalid userId format", err.Error())

	err = RequireIDs("userId", "nope", "jobId", "bad")
	require.Error(t, err)
	assert.Equal(t, "invalid userId or jobId format", err.Error())
}

type sampleRequest struct {
	StudentID string `validate:"required,len=24,hexadecimal"`
	Email     string `validate:"required,email"`
	Link      string `validate:"omitempty,url"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(sampleRequest{StudentID: NewID(), Email: "a@b.io"})
	assert.NoError(t, err)

	err = ValidateStruct(sampleRequest{Email: "not-an-email", Link: "::"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, strings.Contains(err.Error(), "studentID is required"))
	assert.True(t, strings.Contains(err.Error(), "email must be a valid email"))
	assert.True(t, strings.Contains(err.Error(), "link must be a valid url"))
}
