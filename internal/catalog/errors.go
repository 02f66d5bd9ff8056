package catalog

import (
	"net/http"

	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
)

const (
	bookNotFound          = "BOOK_NOT_FOUND"         // errInfo
	inventoryNotFound     = "INVENTORY_NOT_FOUND"    // errInfo
	inventoryInconsistent = "INVENTORY_INCONSISTENT" // errInfo
)

var (
	ErrBookNotFound      = sharedError.NewDomainError(bookNotFound)
	ErrInventoryNotFound = sharedError.NewDomainError(inventoryNotFound)
	// ErrInventoryInconsistent means a counter update would break 0 <= available <= total
	ErrInventoryInconsistent = sharedError.NewDomainError(inventoryInconsistent)
)

func init() {
	sharedError.RegisterDomainErrorResponse(bookNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "BOOK-001",
		Message: "도서 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(inventoryNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "BOOK-002",
		Message: "해당 지점에 이 도서의 재고가 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(inventoryInconsistent, sharedError.ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "BOOK-003",
		Message: "재고 수량이 대출 기록과 일치하지 않습니다. 관리자 확인이 필요합니다.",
	})
}
