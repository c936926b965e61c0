package api

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken creates a JWT token for folio Admin API authentication.
// The key format is "{id}:{secret}" where id is the key ID and secret is hex-encoded
func GenerateToken(adminKey string) (string, error) {
	parts := strings.SplitN(adminKey, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid admin key format: expected 'id:secret'")
	}

	keyID := parts[0]
	secret := parts[1]

	secretBytes, err := hex.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("decoding secret: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/admin/",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = keyID

	return token.SignedString(secretBytes)
}
