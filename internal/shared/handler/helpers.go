package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
	"github.com/library-circulation/go-api-server/internal/shared/validator"
)

// BindJSON parses and validates the JSON body into obj.
// false면 응답은 이미 전송됨
//
// Usage:
//
//	var req BorrowRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.Error(err)

		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
		} else {
			// JSON 문법 오류, 빈 body
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// RespondError records err for the logging middleware and writes errResp
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	c.Error(err)
	c.JSON(errResp.Status, errResp)
}

// RespondServiceError maps a service error to its registered domain response.
// 등록되지 않은 에러는 500
//
// Usage:
//
//	outcome, err := h.service.Borrow(ctx, memberID, isbn, branchID)
//	if err != nil {
//	    handler.RespondServiceError(c, err)
//	    return
//	}
func RespondServiceError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}
