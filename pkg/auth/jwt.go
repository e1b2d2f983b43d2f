package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed claim set carried by every access token.
type Claims struct {
	PrincipalID string `json:"principalId"`
	Username    string `json:"username"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid or expired token")

// NewAccessToken issues a signed HS256 token for a principal. The token
// expires ttl after issuance.
func NewAccessToken(principalID, username, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		PrincipalID: principalID,
		Username:    username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Audience:  []string{"stayfinder-api"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies a token and returns its claims. Malformed, badly signed and
// expired tokens all fail with ErrInvalidToken; callers get no finer
// distinction.
func Parse(tokenString, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := tok.Claims.(*Claims); ok && tok.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
