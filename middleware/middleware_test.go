package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"globetrotter/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "u123",
		Name:   "Ana",
		Email:  "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u123" || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := ValidateJWT("Bearer " + token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateJWTRejectsMalformed(t *testing.T) {
	for _, tok := range []string{"", "Bearer ", "Bearer garbage", "no-prefix"} {
		if _, err := ValidateJWT(tok); err == nil {
			t.Fatalf("expected %q to be rejected", tok)
		}
	}
}

func TestAuthenticateSetsUserID(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "u42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var got string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got = RequestUserID(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if got != "u42" {
		t.Fatalf("user id: got %q, want u42", got)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}
