// Package auth implements the two credential primitives of the server:
// bcrypt password hashing and HS256 access tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity bound to an access token. Subject and Username
// are custom claims so that a decoded token exposes the numeric user id under
// "subject"; iat/exp come from the embedded RegisteredClaims.
type Claims struct {
	jwt.RegisteredClaims
	Subject  int64  `json:"subject"`
	Username string `json:"username"`
}

// GenerateToken issues a signed HS256 token binding the user id and username,
// valid from now until now+validityDuration.
func GenerateToken(userID int64, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Subject:  userID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates the signature and expiry of tokenString and returns
// the embedded claims. Only HS256 is accepted; a token signed with any other
// method fails as invalid. Expired tokens yield common.ErrTokenExpired, any
// other failure yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
