package serverutils_test

import (
	"testing"

	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	GymId  string  `json:"gymId" validate:"required"`
	Amount float64 `json:"amount" validate:"required"`
	Status string  `json:"status,omitempty" validate:"omitempty,oneof=upcoming active"`
	Note   string  `json:"note" validate:"max=5"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         sampleRequest
		wantMessage string
		wantFields  []string
	}{
		{
			name: "valid",
			req:  sampleRequest{GymId: "g1", Amount: 10},
		},
		{
			name:        "missing only",
			req:         sampleRequest{},
			wantMessage: "Missing required fields: gymId, amount",
			wantFields:  []string{"gymId", "amount"},
		},
		{
			name:        "invalid only",
			req:         sampleRequest{GymId: "g1", Amount: 10, Status: "done"},
			wantMessage: "Invalid fields: status must satisfy oneof=upcoming active",
		},
		{
			name:        "missing and invalid",
			req:         sampleRequest{Amount: 10, Note: "too long"},
			wantMessage: "Missing required fields: gymId. Invalid fields: note must satisfy max=5",
			wantFields:  []string{"gymId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := serverutils.ValidateRequest(&tt.req)
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Equal(t, tt.wantFields, appErr.Fields)
		})
	}
}
