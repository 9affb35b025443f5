package services

import (
	"testing"
	"time"

	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService("secret")
	token, err := s.IssueToken(17, 1, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	userID, role, err := s.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != 17 || role != 1 {
		t.Errorf("got user %d role %d", userID, role)
	}
}

func TestParseTokenRejects(t *testing.T) {
	s := NewTokenService("secret")
	zeroUser, _ := s.IssueToken(0, 0, time.Minute)

	for name, token := range map[string]string{
		"garbage":   "not.a.token",
		"zero user": zeroUser,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.ParseToken(token)
			appErr := apperrors.GetAppError(err)
			if appErr == nil || appErr.Code != apperrors.ErrCodeInvalidToken {
				t.Errorf("expected INVALID_TOKEN, got %v", err)
			}
		})
	}
}
