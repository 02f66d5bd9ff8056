package author

import (
	"net/http"

	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
)

const (
	authorNotFound = "AUTHOR_NOT_FOUND" // errInfo
)

var (
	ErrAuthorNotFound = sharedError.NewDomainError(authorNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(authorNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "AUTHOR-001",
		Message: "저자 정보를 찾을 수 없습니다.",
	})
}
