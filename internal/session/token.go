package session

import (
	"time"

	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// claims carries the standard registered claims plus the bound user id.
type claims struct {
	jwt.RegisteredClaims
	UserID string
}

// generateToken signs a session restore token (HS256) for userID.
// The token lives in the snapshot file so a tampered or expired snapshot
// restores to a logged-out session instead of being trusted.
func generateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// userIDFromToken validates tokenString and extracts the bound user id.
func userIDFromToken(tokenString string, secretKey []byte) (string, error) {
	c := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidCredentials
	}

	return c.UserID, nil
}
