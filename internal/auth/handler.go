package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/library-circulation/go-api-server/internal/shared/handler"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login POST /api/v1/auth/login
func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Signup POST /api/v1/auth/signup
func (a *AuthHandler) Signup(c *gin.Context) {
	var request SignupRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := a.authService.Signup(c.Request.Context(), &request); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{})
}
