// Package auth implements registration, login, logout and token handling.
package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// SECRET_KEY signs every access token. Must be set in the environment.
var SECRET_KEY = os.Getenv("SECRET_KEY")

// JwtIssuer is the issuer claim stamped on every token this service signs.
const JwtIssuer = "Jobportal"

// GenerateStandardToken signs an access token for the given user ID with the
// default one hour lifetime. The second return value is reserved for a
// refresh token.
func GenerateStandardToken(uuid uuid.UUID) (string, string, error) {
	return GenerateTokenWithDuration(uuid, time.Hour, JwtIssuer)
}

// GenerateTokenWithDuration signs an access token for the given user ID that
// expires after the given duration.
func GenerateTokenWithDuration(uuid uuid.UUID, duration time.Duration, issuer string) (string, string, error) {

	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   uuid.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := generatedAccessToken.SignedString([]byte(SECRET_KEY))
	if err != nil {
		return "", "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, "", nil
}

// ValidatedToken parses and verifies an encoded token, returning the parsed
// token with RegisteredClaims.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")

		}
		return []byte(SECRET_KEY), nil
	})
}
