package lending

import (
	"errors"
	"net/http"

	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
)

const (
	loanNotFound = "LOAN_NOT_FOUND" // errInfo
)

var (
	ErrLoanNotFound = sharedError.NewDomainError(loanNotFound)
)

// rollback signals inside a transaction; converted to rejections after rollback
var (
	errCopyTaken         = errors.New("lending: copy taken concurrently")
	errLoanClosedAlready = errors.New("lending: loan returned concurrently")
)

func init() {
	sharedError.RegisterDomainErrorResponse(loanNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "LOAN-001",
		Message: "해당 지점에서 대출한 기록이 없습니다.",
	})
}
