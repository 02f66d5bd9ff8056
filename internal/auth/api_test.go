package auth_test

import (
	"net/http"
	"testing"

	"github.com/library-circulation/go-api-server/internal/auth"
	"github.com/library-circulation/go-api-server/internal/member"
	sharedError "github.com/library-circulation/go-api-server/internal/shared/error"
	"github.com/library-circulation/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnvironment creates all dependencies needed for auth handler tests
func setupTestEnvironment(t *testing.T) (*auth.AuthHandler, *testutil.MockTokenManager) {
	t.Helper()

	// Setup test database
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	// Setup dependencies
	memberRepo := member.NewMemberRepository()
	mockTokenManager := testutil.NewMockTokenManager()
	authService := auth.NewAuthService(db, memberRepo, mockTokenManager)
	authHandler := auth.NewAuthHandler(authService)

	return authHandler, mockTokenManager
}

func TestSignup_Success(t *testing.T) {
	// Given: Setup test environment
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)

	// Given: Valid signup request
	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "testuser",
			Email:     "test@example.com",
			BirthDate: "1990-05-17",
			Password:  "password123",
		},
	}

	// When: Execute signup request
	recorder := testutil.ExecuteRequest(t, router, request)

	// Then: Verify response
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	// Given: Setup test environment
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)

	// Given: Create first user
	firstRequest := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "firstuser",
			Email:     "duplicate@example.com",
			BirthDate: "1990-05-17",
			Password:  "password123",
		},
	}

	firstRecorder := testutil.ExecuteRequest(t, router, firstRequest)
	require.Equal(t, http.StatusCreated, firstRecorder.Code)

	// When: Try to create another user with same email
	duplicateRequest := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Another User",
			Username:  "seconduser",
			Email:     "duplicate@example.com", // Same email
			BirthDate: "1988-01-02",
			Password:  "password456",
		},
	}

	duplicateRecorder := testutil.ExecuteRequest(t, router, duplicateRequest)

	// Then: Verify error response
	assert.Equal(t, http.StatusConflict, duplicateRecorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, duplicateRecorder, &errorResponse)
	assert.NotEmpty(t, errorResponse.Status)
	assert.NotEmpty(t, errorResponse.Message)
	assert.Equal(t, "MEMBER-002", errorResponse.Code)
}

func TestSignup_ValidationError_MissingRequiredFields(t *testing.T) {
	// Given: Setup test environment
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)

	testCases := []struct {
		name        string
		requestBody map[string]string
		description string
	}{
		{
			name: "Missing name",
			requestBody: map[string]string{
				"username":  "testuser",
				"email":     "test@example.com",
				"birthDate": "1990-05-17",
				"password":  "password123",
			},
			description: "Should fail when name is missing",
		},
		{
			name: "Missing username",
			requestBody: map[string]string{
				"name":      "Test User",
				"email":     "test@example.com",
				"birthDate": "1990-05-17",
				"password":  "password123",
			},
			description: "Should fail when username is missing",
		},
		{
			name: "Missing email",
			requestBody: map[string]string{
				"name":      "Test User",
				"username":  "testuser",
				"birthDate": "1990-05-17",
				"password":  "password123",
			},
			description: "Should fail when email is missing",
		},
		{
			name: "Missing birthDate",
			requestBody: map[string]string{
				"name":     "Test User",
				"username": "testuser",
				"email":    "test@example.com",
				"password": "password123",
			},
			description: "Should fail when birthDate is missing",
		},
		{
			name: "Missing password",
			requestBody: map[string]string{
				"name":      "Test User",
				"username":  "testuser",
				"email":     "test@example.com",
				"birthDate": "1990-05-17",
			},
			description: "Should fail when password is missing",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When: Execute request with missing field
			request := testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/auth/signup",
				Body:   tc.requestBody,
			}

			recorder := testutil.ExecuteRequest(t, router, request)

			// Then: Verify validation error
			assert.Equal(t, http.StatusBadRequest, recorder.Code, tc.description)

			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.NotEmpty(t, errorResponse.Status, tc.description)
			assert.NotEmpty(t, errorResponse.Message, tc.description)
			assert.NotEmpty(t, errorResponse.Code, tc.description)
		})
	}
}

func TestSignup_ValidationError_InvalidEmail(t *testing.T) {
	// Given: Setup test environment
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)

	// Given: Request with invalid email format
	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "testuser",
			Email:     "invalid-email-format", // Invalid email
			BirthDate: "1990-05-17",
			Password:  "password123",
		},
	}

	// When: Execute request
	recorder := testutil.ExecuteRequest(t, router, request)

	// Then: Verify validation error
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.NotEmpty(t, errorResponse.Message)
}

func TestSignup_ValidationError_PasswordTooShort(t *testing.T) {
	// Given: Setup test environment
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)

	// Given: Request with short password
	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "testuser",
			Email:     "test@example.com",
			BirthDate: "1990-05-17",
			Password:  "short", // Less than 8 characters
		},
	}

	// When: Execute request
	recorder := testutil.ExecuteRequest(t, router, request)

	// Then: Verify validation error
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.NotEmpty(t, errorResponse.Message)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	// Given: Setup test environment
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)

	first := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "samename",
			Email:     "first@example.com",
			BirthDate: "1990-05-17",
			Password:  "password123",
		},
	})
	require.Equal(t, http.StatusCreated, first.Code)

	// When: Sign up again with the same username but another email
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Other User",
			Username:  "samename",
			Email:     "second@example.com",
			BirthDate: "1991-03-04",
			Password:  "password123",
		},
	})

	// Then: Username uniqueness is enforced
	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-002", errorResponse.Code)
}

func TestSignup_FutureBirthDate(t *testing.T) {
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "futureuser",
			Email:     "future@example.com",
			BirthDate: "2999-01-01",
			Password:  "password123",
		},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-004", errorResponse.Code)
}

func TestLogin_Success(t *testing.T) {
	// Given: A registered member
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)
	router.POST("/api/v1/auth/login", authHandler.Login)

	signup := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "loginuser",
			Email:     "login@example.com",
			BirthDate: "1990-05-17",
			Password:  "password123",
		},
	})
	require.Equal(t, http.StatusCreated, signup.Code)

	// When: Logging in with the right password
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: "login@example.com", Password: "password123"},
	})

	// Then: Tokens from the token manager are returned
	require.Equal(t, http.StatusOK, recorder.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, testutil.MockAccessToken, response.AccessToken)
	assert.Equal(t, testutil.MockRefreshToken, response.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	authHandler, _ := setupTestEnvironment(t)

	router := testutil.SetupTestRouter()
	router.POST("/api/v1/auth/signup", authHandler.Signup)
	router.POST("/api/v1/auth/login", authHandler.Login)

	signup := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/signup",
		Body: auth.SignupRequest{
			Name:      "Test User",
			Username:  "wrongpw",
			Email:     "wrongpw@example.com",
			BirthDate: "1990-05-17",
			Password:  "password123",
		},
	})
	require.Equal(t, http.StatusCreated, signup.Code)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/login",
		Body:   auth.LoginRequest{Email: "wrongpw@example.com", Password: "password999"},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-003", errorResponse.Code)
}
