package context

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
	"github.com/library-circulation/go-api-server/internal/shared/logger"
)

// Context keys for storing user authentication information
const (
	MemberIDKey    = "member_id"
	MemberEmailKey = "member_email"
)

// SetMemberID stores the authenticated member id the way the JWT middleware does (decimal string)
func SetMemberID(c *gin.Context, memberID uint32) {
	c.Set(MemberIDKey, strconv.FormatUint(uint64(memberID), 10))
}

// GetMemberID parses the member id set by the JWT middleware.
// Zero is never a valid member id.
func GetMemberID(c *gin.Context) (uint32, bool) {
	memberID, exists := c.Get(MemberIDKey)
	if !exists {
		return 0, false
	}

	idStr, ok := memberID.(string)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint32(id), true
}

// RequireMemberID retrieves the authenticated member id from the Gin context.
// When it is missing the 401 response is already sent and ok is false.
func RequireMemberID(c *gin.Context) (uint32, bool) {
	memberID, ok := GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "로그인을 해주세요.",
		})
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] context에 회원 ID가 존재하지 않습니다.")
		return 0, false
	}
	return memberID, true
}
