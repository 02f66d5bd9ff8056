package member

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/library-circulation/go-api-server/internal/shared/context"
	"github.com/library-circulation/go-api-server/internal/shared/handler"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) GetProfile(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) DeleteProfile(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), memberID); err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) IssuePasscode(c *gin.Context) {
	var request IssuePasscodeRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := h.memberService.IssuePasscode(c.Request.Context(), request.Email); err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "인증 코드가 발송되었습니다."})
}

func (h *MemberHandler) VerifyPasscode(c *gin.Context) {
	var request VerifyPasscodeRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := h.memberService.VerifyPasscode(c.Request.Context(), request.Email, request.Code); err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "이메일 인증이 완료되었습니다."})
}
