package member

import (
	"net/http"

	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
)

const (
	memberAlreadyExists = "MEMBER_ALREADY_EXISTS" // errInfo
	memberNotFound      = "MEMBER_NOT_FOUND"      // errInfo
	memberHasOpenLoans  = "MEMBER_HAS_OPEN_LOANS" // errInfo
	invalidPasscode     = "INVALID_PASSCODE"      // errInfo
	passcodeExpired     = "PASSCODE_EXPIRED"      // errInfo
)

var (
	ErrMemberAlreadyExists = sharedError.NewDomainError(memberAlreadyExists)
	ErrMemberNotFound      = sharedError.NewDomainError(memberNotFound)
	ErrMemberHasOpenLoans  = sharedError.NewDomainError(memberHasOpenLoans)
	ErrInvalidPasscode     = sharedError.NewDomainError(invalidPasscode)
	ErrPasscodeExpired     = sharedError.NewDomainError(passcodeExpired)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(memberAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "이미 가입된 사용자입니다.",
	})

	sharedError.RegisterDomainErrorResponse(memberHasOpenLoans, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-003",
		Message: "반납하지 않은 도서가 있어 탈퇴할 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidPasscode, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-004",
		Message: "인증 코드가 올바르지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(passcodeExpired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-005",
		Message: "인증 코드가 만료되었습니다.",
	})
}
