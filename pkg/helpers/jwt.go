package helpers

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager handles generation and validation of JWT tokens
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

// TokenStatus is the outcome of inspecting a token cookie.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenInvalid
	TokenEmpty
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	case TokenInvalid:
		return "invalid"
	default:
		return "empty"
	}
}

type Claims struct {
	MemberID int64    `json:"uid"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

func (m *JWTManager) sign(secret []byte, memberID int64, roles []string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		MemberID: memberID,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			// unique id so two tokens issued within the same second differ
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(memberID, 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

func (m *JWTManager) GenerateAccessToken(memberID int64, roles []string) (string, time.Time, error) {
	return m.sign(m.AccessSecret, memberID, roles, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(memberID int64) (string, time.Time, error) {
	return m.sign(m.RefreshSecret, memberID, nil, m.RefreshTTL)
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, m.AccessSecret)
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, m.RefreshSecret)
}

// InspectAccessToken classifies an access token. Claims are returned for valid and expired tokens.
func (m *JWTManager) InspectAccessToken(tokenStr string) (*Claims, TokenStatus) {
	return inspect(tokenStr, m.AccessSecret)
}

// InspectRefreshToken classifies a refresh token. Claims are returned for valid and expired tokens.
func (m *JWTManager) InspectRefreshToken(tokenStr string) (*Claims, TokenStatus) {
	return inspect(tokenStr, m.RefreshSecret)
}

func inspect(tokenStr string, secret []byte) (*Claims, TokenStatus) {
	if tokenStr == "" {
		return nil, TokenEmpty
	}
	claims, err := parseToken(tokenStr, secret)
	switch {
	case err == nil:
		return claims, TokenValid
	case errors.Is(err, jwt.ErrTokenExpired):
		// the signature was verified before expiry was checked
		return claims, TokenExpired
	default:
		return nil, TokenInvalid
	}
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return claims, err
	}
	if !tkn.Valid {
		return claims, errors.New("invalid token")
	}
	return claims, nil
}
