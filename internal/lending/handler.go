package lending

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/library-circulation/go-api-server/internal/shared/context"
	"github.com/library-circulation/go-api-server/internal/shared/handler"
)

type LendingHandler struct {
	lendingService *LendingService
}

func NewLendingHandler(lendingService *LendingService) *LendingHandler {
	return &LendingHandler{
		lendingService: lendingService,
	}
}

// Borrow answers 200 for both accepted and rejected outcomes; errors map through the domain registry
func (h *LendingHandler) Borrow(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request BorrowRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	outcome, err := h.lendingService.Borrow(c.Request.Context(), request.ISBN, memberID, request.BranchID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	respondOutcome(c, outcome)
}

func (h *LendingHandler) Return(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request ReturnRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	outcome, err := h.lendingService.Return(c.Request.Context(), request.ISBN, memberID, request.BranchID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	respondOutcome(c, outcome)
}

func (h *LendingHandler) SetSubscription(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request SubscriptionRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	outcome, err := h.lendingService.SetSubscription(c.Request.Context(), request.ISBN, memberID, *request.Subscribe)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	respondOutcome(c, outcome)
}

func (h *LendingHandler) ListBorrowed(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	views, err := h.lendingService.ListBorrowed(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListBorrowedResponse{Loans: views})
}

// respondOutcome writes the outcome envelope with 200 for both accepted and rejected
func respondOutcome[T any](c *gin.Context, outcome *Outcome[T]) {
	response := outcome.Response()
	if response.Reason != "" {
		sharedContext.SetOutcome(c, string(response.Reason))
	} else {
		sharedContext.SetOutcome(c, response.Status)
	}
	c.JSON(http.StatusOK, response)
}
