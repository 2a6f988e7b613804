package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtIssuer   = "sea-catering-api"
	jwtAudience = "sea-catering-users"

	DefaultAccessTokenTTL = 24 * time.Hour
	RefreshTokenTTL       = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
)

// Principal is the authenticated caller.
type Principal struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type JWTClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *JWTClaims) Principal() Principal {
	return Principal{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type" example:"Bearer"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func CheckPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// TokenIssuer signs and verifies access and refresh tokens.
type TokenIssuer struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration

	now func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL time.Duration) *TokenIssuer {
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	return &TokenIssuer{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		now:           time.Now,
	}
}

func (ti *TokenIssuer) clock() time.Time {
	if ti.now == nil {
		return time.Now()
	}
	return ti.now()
}

func (ti *TokenIssuer) generateToken(p Principal, tokenType, secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrEmptyJWTSecret
	}

	now := ti.clock()
	expirationTime := now.Add(ttl)

	claims := &JWTClaims{
		UserID:    p.UserID,
		Email:     p.Email,
		Role:      p.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Subject:   p.UserID,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expirationTime, nil
}

func (ti *TokenIssuer) GenerateAccessToken(p Principal) (string, time.Time, error) {
	return ti.generateToken(p, tokenTypeAccess, ti.AccessSecret, ti.AccessTTL)
}

func (ti *TokenIssuer) GenerateRefreshToken(p Principal) (string, time.Time, error) {
	return ti.generateToken(p, tokenTypeRefresh, ti.RefreshSecret, RefreshTokenTTL)
}

func (ti *TokenIssuer) GenerateTokens(p Principal) (TokenPair, error) {
	accessToken, expiresAt, err := ti.GenerateAccessToken(p)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, _, err := ti.GenerateRefreshToken(p)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateAccessToken verifies an access token and returns its principal.
func (ti *TokenIssuer) ValidateAccessToken(tokenString string) (Principal, error) {
	claims, err := ValidateToken(tokenString, ti.AccessSecret)
	if err != nil {
		return Principal{}, err
	}
	if claims.TokenType != tokenTypeAccess {
		return Principal{}, ErrInvalidTokenType
	}
	return claims.Principal(), nil
}

func (ti *TokenIssuer) ValidateRefreshToken(tokenString string) (Principal, error) {
	claims, err := ValidateToken(tokenString, ti.RefreshSecret)
	if err != nil {
		return Principal{}, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return Principal{}, ErrInvalidTokenType
	}
	return claims.Principal(), nil
}

// Refresh exchanges a refresh token for a new token pair.
func (ti *TokenIssuer) Refresh(refreshToken string) (TokenPair, Principal, error) {
	p, err := ti.ValidateRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, Principal{}, err
	}

	pair, err := ti.GenerateTokens(p)
	if err != nil {
		return TokenPair{}, Principal{}, err
	}
	return pair, p, nil
}

func ValidateToken(tokenString, secret string) (*JWTClaims, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
