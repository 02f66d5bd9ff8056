package database

import (
	"fmt"
	"net/http"

	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
)

const (
	storeUnavailable = "STORE_UNAVAILABLE" // errInfo
)

// ErrStoreUnavailable marks a failed lock wait, query or commit.
// The outcome of the request is unknown; callers re-read state before retrying.
var ErrStoreUnavailable = sharedError.NewDomainError(storeUnavailable)

func init() {
	sharedError.RegisterDomainErrorResponse(storeUnavailable, sharedError.ErrorResponse{
		Status:    http.StatusServiceUnavailable,
		Code:      "ERROR-004",
		Message:   "일시적으로 요청을 처리할 수 없습니다. 현재 상태를 다시 조회한 뒤 재시도해 주세요.",
		Retryable: true,
	})
}

// Unavailable wraps err so that it resolves to ErrStoreUnavailable while keeping the cause
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
