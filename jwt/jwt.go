package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are stateless: the signed claims are the sole source of identity,
// there is no server-side session table.

// GenerateToken signs a token carrying the user id and role.
func GenerateToken(secret string, userID uint, role string, expTime int64) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userID"] = userID
	claims["role"] = role
	claims["exp"] = expTime

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken validates the signature and expiry and returns the embedded
// user id and role.
func VerifyToken(secret string, tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", err
	}

	if !token.Valid {
		return 0, "", jwt.ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("unexpected claims type")
	}

	rawID, ok := claims["userID"].(float64)
	if !ok {
		return 0, "", errors.New("token is missing userID claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", errors.New("token is missing role claim")
	}

	return uint(rawID), role, nil
}
