package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// TokenService issues and validates signed, stateless JWTs. There is no
// server-side session table; validity is signature plus expiry alone.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) IssueAccessToken(userID uint) (string, error) {
	return s.issue(userID, AccessToken, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(userID uint) (string, error) {
	return s.issue(userID, RefreshToken, s.refreshTTL)
}

func (s *TokenService) issue(userID uint, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: string(kind),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate verifies signature, expiry and token type, returning the subject user id.
func (s *TokenService) Validate(tokenString string, expected TokenKind) (uint, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	if claims.TokenType != string(expected) {
		return 0, ErrWrongTokenType
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

// Refresh validates a refresh token and mints a new access token for the same
// subject. The refresh token itself is not invalidated; it stays usable until
// its natural expiry.
func (s *TokenService) Refresh(refreshToken string) (string, error) {
	userID, err := s.Validate(refreshToken, RefreshToken)
	if err != nil {
		return "", err
	}
	return s.IssueAccessToken(userID)
}
