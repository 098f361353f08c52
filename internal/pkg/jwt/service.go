package jwt

import (
	"errors"
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeAccess is the only token kind this service accepts; issuing
// tokens is the accounts service's job.
const TokenTypeAccess = "access"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	ValidateAccessToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret []byte
}

func NewHMACService(secret string) *HMACService {
	return &HMACService{secret: []byte(secret)}
}

func (s *HMACService) ValidateAccessToken(tokenString string) (Claims, error) {
	var claims Claims

	token, err := jwtlib.ParseWithClaims(tokenString, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrTokenInvalid, t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if claims.TokenType != TokenTypeAccess {
		return Claims{}, ErrTokenInvalid
	}
	if claims.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}

	return claims, nil
}
