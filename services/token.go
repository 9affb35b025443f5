package services

import (
	"fmt"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/errors"

	"github.com/dgrijalva/jwt-go"
)

// TokenService verifies HS256 tokens carrying {"userinfo": {"userid", "role"}}
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// ParseToken returns userID and role from a signed token
func (s *TokenService) ParseToken(tokenString string) (uint, int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "invalid token", err)
	}

	claimsMap, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "cannot parse token claims", nil)
	}

	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "token has no user info", nil)
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID || userID <= 0 {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "token has no user id", nil)
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "token has no role", nil)
	}

	return uint(userID), int(role), nil
}

// IssueToken signs a token for userID. Used by operators and tests; login is handled elsewhere.
func (s *TokenService) IssueToken(userID uint, role int, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userinfo": map[string]interface{}{
			"userid": userID,
			"role":   role,
		},
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
