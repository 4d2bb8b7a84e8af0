package auth

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret []byte
	secretMu  sync.Mutex
)

func secret() []byte {
	secretMu.Lock()
	defer secretMu.Unlock()
	if jwtSecret == nil {
		s := os.Getenv("JWT_SECRET")
		if s == "" {
			s = "stayspot-development-secret"
			log.Println("JWT_SECRET not set, using development secret")
		}
		jwtSecret = []byte(s)
	}
	return jwtSecret
}

// GenerateToken issues a week-long HS256 token for the user.
func GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 168).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// VerifyToken checks signature and expiry and returns the user id carried
// in the claims.
func VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user id in token claims")
	}
	return uint(userIDFloat), nil
}
