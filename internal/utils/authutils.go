package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var secret []byte

func InitJWT(jwtSecret string) {
	secret = []byte(jwtSecret)
}

type TokenData struct {
	Sub int64
	Exp int64
}

// IssueToken creates a signed HS256 access token for the given user id.
func IssueToken(userID int64, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("JWT secret not initialized")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func ValidateToken(tokenString string) (*TokenData, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT secret not initialized")
	}

	clean := sanitizeToken(tokenString)
	token, err := jwt.Parse(clean, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	sub, err := strconv.ParseInt(getValue(claims, "sub"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}

	return &TokenData{
		Sub: sub,
		Exp: getInt64(claims, "exp"),
	}, nil
}

func ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return ValidateToken(token)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
