// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-not-used-for-verification"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestInspectToken(t *testing.T) {
	t.Parallel()

	exp := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	token := signTestToken(t, jwt.RegisteredClaims{
		Subject:   "author-7",
		IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	info, err := InspectToken(token)
	if err != nil {
		t.Fatalf("InspectToken() error = %v", err)
	}
	if info.Subject != "author-7" {
		t.Errorf("Subject = %q, want author-7", info.Subject)
	}
	if !info.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", info.ExpiresAt, exp)
	}
	if info.ExpiredAt(exp.Add(-time.Second)) {
		t.Error("token should not be expired before exp")
	}
	if !info.ExpiredAt(exp) {
		t.Error("token should be expired at exp")
	}
}

func TestInspectToken_ExpiredStillDecodes(t *testing.T) {
	t.Parallel()

	token := signTestToken(t, jwt.RegisteredClaims{
		Subject:   "u",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	info, err := InspectToken(token)
	if err != nil {
		t.Fatalf("expired token should decode, got %v", err)
	}
	if !info.ExpiredAt(time.Now()) {
		t.Error("ExpiredAt(now) = false, want true")
	}
}

func TestInspectToken_Opaque(t *testing.T) {
	t.Parallel()

	if _, err := InspectToken("not-a-jwt"); err == nil {
		t.Error("opaque credential should return an error")
	}
}

func TestTokenInfo_NoExpiry(t *testing.T) {
	t.Parallel()

	if (TokenInfo{}).ExpiredAt(time.Now()) {
		t.Error("token without exp should never report expired")
	}
}
