package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/issuance-vault/ledger/internal/api/shared/errors"
	"github.com/issuance-vault/ledger/internal/domain"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    apierrors.ErrorCode
		wantDetails bool
	}{
		{"validation", fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusUnprocessableEntity, apierrors.ErrCodeValidationFailed, true},
		{"not found", fmt.Errorf("%w: 7", domain.ErrAssetNotFound), http.StatusNotFound, apierrors.ErrCodeNotFound, true},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusConflict, apierrors.ErrCodeInvalidTransition, true},
		{"already settled", domain.ErrAlreadySettled, http.StatusConflict, apierrors.ErrCodeAlreadySettled, true},
		{"already fractionalized", domain.ErrAlreadyFractionalized, http.StatusConflict, apierrors.ErrCodeAlreadyFractionalized, true},
		{"not cleared", domain.ErrNotCleared, http.StatusConflict, apierrors.ErrCodeNotCleared, true},
		{"provenance break", domain.ErrProvenanceBreak, http.StatusConflict, apierrors.ErrCodeProvenanceBreak, true},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusConflict, apierrors.ErrCodeInsufficientBalance, true},
		{"invariant violation", domain.ErrInvariantViolation, http.StatusInternalServerError, apierrors.ErrCodeInvariantViolation, false},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, apierrors.ErrCodeInternalError, false},
		{"api error passes through", apierrors.NewValidationError("limit must be positive"), http.StatusUnprocessableEntity, apierrors.ErrCodeValidationFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := apierrors.FromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.NotEmpty(t, apiErr.Message)
			if tt.wantDetails {
				assert.NotEmpty(t, apiErr.Details)
			} else {
				assert.Empty(t, apiErr.Details)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := apierrors.NewNotFoundError("Asset not found", "id 7")
	assert.JSONEq(t, `{"code":"not_found","message":"Asset not found","details":"id 7"}`, err.Error())
}
