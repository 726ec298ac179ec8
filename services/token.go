package services

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint   `json:"userid"`
	Role   string `json:"role"`
}

// GenerateToken phát access token JWT chứa userid và role, hết hạn sau ttlMinutes phút.
func GenerateToken(userInfo UserInfo, ttlMinutes int) (string, error) {
	claims := jwt.MapClaims{
		"userinfo": userInfo,
		"exp":      time.Now().Add(time.Duration(ttlMinutes) * time.Minute).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseToken xác minh chữ ký và trả về userid, role trong token.
func ParseToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	userInfo, ok := claims["userinfo"].(map[string]interface{})
	if !ok {
		return 0, "", fmt.Errorf("userinfo not found in token claims")
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID {
		return 0, "", fmt.Errorf("user ID not found in userinfo")
	}

	role, okRole := userInfo["role"].(string)
	if !okRole {
		return 0, "", fmt.Errorf("role not found in userinfo")
	}

	return uint(userID), role, nil
}
