package testutil

import (
	"strconv"

	"github.com/library-circulation/go-api-server/internal/shared/token"
)

const (
	MockAccessToken  = "mock-access-token"
	MockRefreshToken = "mock-refresh-token"
)

// MockTokenManager is a token.Manager whose behavior is set per test
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(memberID, email string) (string, error)
	GenerateRefreshTokenFunc func(memberID, email string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

var _ token.Manager = (*MockTokenManager)(nil)

func (m *MockTokenManager) GenerateAccessToken(memberID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(memberID, email)
	}
	return MockAccessToken, nil
}

func (m *MockTokenManager) GenerateRefreshToken(memberID, email string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(memberID, email)
	}
	return MockRefreshToken, nil
}

// ValidateToken rejects everything unless ValidateTokenFunc is set
func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, token.ErrInvalidToken
}

func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// NewMemberTokenManager accepts MockAccessToken and MockRefreshToken as tokens of memberID
func NewMemberTokenManager(memberID uint32, email string) *MockTokenManager {
	id := strconv.FormatUint(uint64(memberID), 10)
	return &MockTokenManager{
		ValidateTokenFunc: func(tokenString string) (*token.Claims, error) {
			switch tokenString {
			case MockAccessToken:
				return &token.Claims{MemberID: id, Email: email, TokenType: token.ACCESS}, nil
			case MockRefreshToken:
				return &token.Claims{MemberID: id, Email: email, TokenType: token.REFRESH}, nil
			default:
				return nil, token.ErrInvalidToken
			}
		},
	}
}
