package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferStatus_String(t *testing.T) {
	assert.Equal(t, "Sent", OfferStatusSent.String())
	assert.Equal(t, "Accepted", OfferStatusAccepted.String())
	assert.Equal(t, "Rejected", OfferStatusRejected.String())
}

func TestOfferStatus_IsValid(t *testing.T) {
	assert.True(t, OfferStatusSent.IsValid())
	assert.True(t, OfferStatusAccepted.IsValid())
	assert.True(t, OfferStatusRejected.IsValid())

	assert.False(t, OfferStatus("Pending").IsValid())
	assert.False(t, OfferStatus("").IsValid())
}

func TestOfferStatus_IsTerminal(t *testing.T) {
	assert.False(t, OfferStatusSent.IsTerminal())
	assert.True(t, OfferStatusAccepted.IsTerminal())
	assert.True(t, OfferStatusRejected.IsTerminal())
}

func TestParseOfferResponse(t *testing.T) {
	tests := []struct {
		input    string
		expected OfferStatus
		wantErr  bool
	}{
		{"Accepted", OfferStatusAccepted, false},
		{"accepted", OfferStatusAccepted, false},
		{" REJECTED ", OfferStatusRejected, false},
		{"Rejected", OfferStatusRejected, false},
		{"Sent", "", true},
		{"Maybe", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := ParseOfferResponse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}
