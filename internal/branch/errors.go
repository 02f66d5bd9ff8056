package branch

import (
	"net/http"

	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
)

const (
	branchNotFound = "BRANCH_NOT_FOUND" // errInfo
)

var (
	ErrBranchNotFound = sharedError.NewDomainError(branchNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(branchNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "BRANCH-001",
		Message: "지점 정보를 찾을 수 없습니다.",
	})
}
