package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService - реализация TokenServicePort для JWT.
// Токены выпускает внешний сервис аутентификации, здесь они только
// проверяются общим секретом.
type TokenService struct {
	signingKey []byte
}

func NewTokenService(signingKey string) (*TokenService, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenService{signingKey: []byte(signingKey)}, nil
}

// jwtCustomClaims - наша реализация стандартных claims JWT.
type jwtCustomClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// ValidateToken проверяет подпись и срок действия токена.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	serviceLogger := logger.WithFields(port.Fields{
		"component": "TokenService",
		"method":    "ValidateToken",
	})

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем, что метод подписи - HS256, как мы и ожидали
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			alg := token.Header["alg"]
			serviceLogger.Error("Unexpected signing method detected", fmt.Errorf("algorithm %v is not HS256", alg), port.Fields{"algorithm": alg})
			return nil, fmt.Errorf("unexpected signing method: %v", alg)
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			if claims, ok := token.Claims.(*jwtCustomClaims); ok {
				serviceLogger.Warn("Token has expired", port.Fields{"user_id": claims.UserID.String()})
			} else {
				serviceLogger.Warn("An expired token could not be parsed to claims", nil)
			}
		} else {
			serviceLogger.Error("Invalid token format or signature", err, nil)
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		serviceLogger.Error("Token was parsed without error, but claims type assertion failed", nil, nil)
		return nil, domain.ErrTokenInvalid
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		serviceLogger.Warn("Token carries unknown role", port.Fields{"role": claims.Role})
		return nil, domain.ErrTokenInvalid
	}

	serviceLogger.Debug("Token validated successfully.", port.Fields{
		"user_id": claims.UserID.String(),
		"role":    claims.Role,
	})

	return &domain.Claims{
		UserID: claims.UserID,
		Role:   role,
	}, nil
}
