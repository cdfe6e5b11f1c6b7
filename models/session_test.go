package models

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestSession_AccountID(t *testing.T) {
	s := Session{SessionClaims: SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
	}}

	id, err := s.AccountID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestSession_AccountID_BadSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
	}{
		{name: "empty", subject: ""},
		{name: "not a number", subject: "forty-two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{SessionClaims: SessionClaims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject},
			}}
			if _, err := s.AccountID(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSession_Principal(t *testing.T) {
	userID := int64(7)
	s := Session{SessionClaims: SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
		UserID:           &userID,
		Role:             RoleUser,
		Username:         "user1",
	}}

	p := s.Principal()
	if p.AccountID != 42 {
		t.Errorf("expected AccountID=42, got %d", p.AccountID)
	}
	if p.UserID == nil || *p.UserID != 7 {
		t.Errorf("expected UserID=7, got %v", p.UserID)
	}
	if p.Role != RoleUser || p.Username != "user1" {
		t.Errorf("unexpected principal: %+v", p)
	}
}

func TestPrincipal_Owns(t *testing.T) {
	seven := int64(7)

	tests := []struct {
		name      string
		principal Principal
		userID    int64
		want      bool
	}{
		{name: "user owns own records", principal: Principal{Role: RoleUser, UserID: &seven}, userID: 7, want: true},
		{name: "user does not own others", principal: Principal{Role: RoleUser, UserID: &seven}, userID: 9, want: false},
		{name: "user without profile owns nothing", principal: Principal{Role: RoleUser}, userID: 7, want: false},
		{name: "admin unrestricted", principal: Principal{Role: RoleAdmin}, userID: 9, want: true},
		{name: "sysadmin unrestricted", principal: Principal{Role: RoleSysadmin}, userID: 9, want: true},
		{name: "frontdesk unrestricted", principal: Principal{Role: RoleFrontdesk}, userID: 9, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.principal.Owns(tt.userID); got != tt.want {
				t.Errorf("Owns(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}
