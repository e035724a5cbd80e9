package interfaces

import (
	"context"

	"twitter-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository 定义了用户相关的数据库操作接口
type UserRepository interface {
	// FindByID 按ID查询用户，不存在时返回 (nil, nil)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}
