package graphql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	apierrors "github.com/issuance-vault/ledger/internal/api/shared/errors"
	"github.com/issuance-vault/ledger/internal/logger"
)

// ErrorPresenter formats resolver errors the same way the REST API does.
// Domain errors become their API error code; anything else is logged and hidden.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	status, apiErr := apierrors.FromError(err)
	if status >= http.StatusInternalServerError {
		return handleInternalError(ctx, err)
	}
	if apiErr.Code == apierrors.ErrCodeNotFound {
		return handleNotFoundError(apiErr)
	}

	gqlErr := &gqlerror.Error{
		Message: apiErr.Message,
		Extensions: map[string]interface{}{
			"code":    string(apiErr.Code),
			"message": apiErr.Message,
		},
	}
	if apiErr.Details != "" {
		gqlErr.Extensions["details"] = apiErr.Details
	}

	return gqlErr
}

// handleInternalError logs err and returns the generic internal error
func handleInternalError(ctx context.Context, err error) *gqlerror.Error {
	logger.ErrorCtx(ctx, err, zap.String("error", "Unhandled GraphQL error"))
	return internalError()
}

func internalError() *gqlerror.Error {
	return &gqlerror.Error{
		Message: "Internal server error",
		Extensions: map[string]interface{}{
			"code":    string(apierrors.ErrCodeInternalError),
			"message": "Internal server error",
		},
	}
}

// handleNotFoundError handles not found errors and returns a gqlerror.Error
func handleNotFoundError(apiErr *apierrors.APIError) *gqlerror.Error {
	gqlErr := &gqlerror.Error{
		Message: "Not found",
		Extensions: map[string]interface{}{
			"code":    string(apierrors.ErrCodeNotFound),
			"message": apiErr.Message,
		},
	}
	if apiErr.Details != "" {
		gqlErr.Extensions["details"] = apiErr.Details
	}
	return gqlErr
}

// RecoverFunc handles panics while executing an operation
func RecoverFunc(ctx context.Context, err interface{}) *gqlerror.Error {
	logger.ErrorCtx(ctx, fmt.Errorf("panic: %v", err), zap.Any("panic", err))
	return internalError()
}
