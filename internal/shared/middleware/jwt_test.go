package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/library-circulation/go-api-server/internal/shared/context"
	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
	"github.com/library-circulation/go-api-server/internal/shared/middleware"
	"github.com/library-circulation/go-api-server/internal/shared/testutil"
	"github.com/library-circulation/go-api-server/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTRouter(manager token.Manager) *gin.Engine {
	router := testutil.SetupTestRouter()
	router.GET("/me", middleware.JWT(manager), func(c *gin.Context) {
		memberID, ok := sharedContext.RequireMemberID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"memberId": memberID})
	})
	return router
}

func TestJWT_AccessTokenSetsMember(t *testing.T) {
	// Given
	router := setupJWTRouter(testutil.NewMemberTokenManager(7, "reader@example.com"))

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:      http.MethodGet,
		URL:         "/me",
		BearerToken: testutil.MockAccessToken,
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		MemberID uint32 `json:"memberId"`
	}
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, uint32(7), response.MemberID)
}

func TestJWT_Rejects(t *testing.T) {
	router := setupJWTRouter(testutil.NewMemberTokenManager(7, "reader@example.com"))

	tests := []struct {
		name        string
		bearerToken string
	}{
		{name: "missing token", bearerToken: ""},
		{name: "unknown token", bearerToken: "forged"},
		{name: "refresh token", bearerToken: testutil.MockRefreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method:      http.MethodGet,
				URL:         "/me",
				BearerToken: tt.bearerToken,
			})

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, "AUTH-000", errorResponse.Code)
		})
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	manager := testutil.NewMockTokenManager()
	manager.ValidateTokenFunc = func(string) (*token.Claims, error) {
		return nil, token.ErrExpiredToken
	}
	router := setupJWTRouter(manager)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:      http.MethodGet,
		URL:         "/me",
		BearerToken: "stale",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
