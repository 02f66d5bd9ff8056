package auth

import (
	"net/http"

	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
)

const (
	incorrectEmailPassword = "INCORRECT_EMAIL_PASSWORD" // errInfo
	invalidBirthDate       = "INVALID_BIRTH_DATE"       // errInfo
)

var (
	ErrInCorrectEmailPassword = sharedError.NewDomainError(incorrectEmailPassword)
	// 미래 날짜 또는 파싱 불가. 나이 제한 계산에 쓰이므로 가입 시점에 막음
	ErrInvalidBirthDate = sharedError.NewDomainError(invalidBirthDate)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectEmailPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "이메일 또는 비밀번호가 일치하지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidBirthDate, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-004",
		Message: "생년월일이 올바르지 않습니다. 미래 날짜는 입력할 수 없습니다.",
	})
}
