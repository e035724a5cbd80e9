package util

import (
	"errors"
	"time"

	"twitter-backend/config"

	"github.com/dgrijalva/jwt-go"
)

// TokenPayload 是访问令牌解码后的内容
type TokenPayload struct {
	UserID string
	Verify int
}

// GenerateToken 签发访问令牌（仅用于测试和脚本，令牌签发服务在本仓库范围之外）
func GenerateToken(userID string, verify int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"verify":  verify,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken 校验访问令牌并返回解码后的用户信息
func ValidateToken(tokenString string) (*TokenPayload, error) {
	if tokenString == "" {
		return nil, errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("意外的签名方法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("无效的用户ID")
	}

	verify := 0
	if v, ok := claims["verify"].(float64); ok {
		verify = int(v)
	}

	return &TokenPayload{UserID: userID, Verify: verify}, nil
}
