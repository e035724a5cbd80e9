package middleware

import (
	"context"
	"strings"
	"time"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthMiddleware 要求请求携带合法的访问令牌
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要访问令牌"))
			c.Abort()
			return
		}

		if !setViewerFromHeader(c, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware 允许游客访问；携带了令牌则必须合法
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if !setViewerFromHeader(c, authHeader) {
			return
		}
		c.Next()
	}
}

// VerifiedUserMiddleware 要求用户已通过验证，必须在 AuthMiddleware 之后使用
func VerifiedUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		verify, exists := c.Get("verify")
		if !exists || model.UserVerifyStatus(verify.(int)) != model.UserVerified {
			errors.HandleError(c, errors.New(errors.ErrUserNotVerified, "用户尚未通过验证"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func setViewerFromHeader(c *gin.Context, authHeader string) bool {
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效的认证格式"))
		c.Abort()
		return false
	}

	payload, err := util.ValidateToken(parts[1])
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "无效或过期的令牌", err))
		c.Abort()
		return false
	}

	userID, err := primitive.ObjectIDFromHex(payload.UserID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "无效的用户ID", err))
		c.Abort()
		return false
	}

	util.Logger.Debug("请求已认证",
		zap.String("user_id", payload.UserID),
		zap.String("path", c.Request.URL.Path))

	c.Set("user_id", userID)
	c.Set("verify", payload.Verify)
	return true
}

// ViewerID 读取当前请求的查看者ID，游客返回 nil
func ViewerID(c *gin.Context) *primitive.ObjectID {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id := value.(primitive.ObjectID)
	return &id
}
