package token_adapter

import (
	"context"
	"errors"
	"listings-service/internal/core/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSigningKey = "test-signing-key"

func signToken(t *testing.T, key string, userID uuid.UUID, role string, expiresAt time.Time) string {
	t.Helper()
	claims := jwtCustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestNewTokenServiceRejectsEmptyKey(t *testing.T) {
	if _, err := NewTokenService(""); err == nil {
		t.Fatal("expected an error for empty signing key")
	}
}

func TestValidateToken(t *testing.T) {
	service, err := NewTokenService(testSigningKey)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	userID := uuid.New()
	validToken := signToken(t, testSigningKey, userID, "agent", time.Now().Add(time.Hour))

	claims, err := service.ValidateToken(context.Background(), validToken)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != domain.RoleAgent {
		t.Errorf("role = %q, want agent", claims.Role)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	service, err := NewTokenService(testSigningKey)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	userID := uuid.New()

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "wrong signing key",
			token: signToken(t, "another-key", userID, "agent", time.Now().Add(time.Hour)),
		},
		{
			name:  "expired token",
			token: signToken(t, testSigningKey, userID, "agent", time.Now().Add(-time.Hour)),
		},
		{
			name:  "unknown role",
			token: signToken(t, testSigningKey, userID, "superuser", time.Now().Add(time.Hour)),
		},
		{
			name:  "garbage instead of token",
			token: "not-a-jwt-at-all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.ValidateToken(context.Background(), tt.token); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Errorf("ValidateToken error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

// Токен, подписанный не HMAC-алгоритмом, отклоняется независимо от содержимого.
func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	service, err := NewTokenService(testSigningKey)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
		UserID: uuid.New(),
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := service.ValidateToken(context.Background(), unsigned); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("ValidateToken error = %v, want ErrTokenInvalid", err)
	}
}
