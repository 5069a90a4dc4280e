// Package service provides JWT token generation and validation
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator handles JWT access token generation and validation.
// Tokens are stateless: validity is decided purely by signature and expiry,
// never by a store lookup.
type TokenGenerator struct {
	secret            string
	accessTokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, accessExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:            secret,
		accessTokenExpiry: accessExpiry,
	}
}

// Generate creates an access token carrying the user's id, username and role
func (tg *TokenGenerator) Generate(userID int, username string, role int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      now.Add(tg.accessTokenExpiry).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Validate validates an access token and returns the userID, username and role
func (tg *TokenGenerator) Validate(tokenString string) (int, string, int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return 0, "", 0, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return 0, "", 0, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", 0, fmt.Errorf("invalid token claims")
	}

	// Extract userID (JWT claims decode numbers as float64)
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", 0, fmt.Errorf("user_id not found in token")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return 0, "", 0, fmt.Errorf("username not found in token")
	}

	// Extract role (JWT claims decode numbers as float64)
	roleFloat, ok := claims["role"].(float64)
	if !ok {
		return 0, "", 0, fmt.Errorf("role not found in token")
	}

	return int(userIDFloat), username, int(roleFloat), nil
}
