package context

import "github.com/gin-gonic/gin"

const OutcomeKey = "outcome"

// SetOutcome records a business result ("ACCEPTED" or the rejection reason) for the access log.
// 거절도 200이라 status만으로는 구분되지 않음
func SetOutcome(c *gin.Context, outcome string) {
	c.Set(OutcomeKey, outcome)
}
