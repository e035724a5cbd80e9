package interfaces

import (
	"context"

	"twitter-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationRepository 定义了私信历史的数据库操作接口
type ConversationRepository interface {
	// FindBetween 查询两个用户之间的双向消息，按时间倒序分页
	FindBetween(ctx context.Context, senderID, receiverID primitive.ObjectID, skip, limit int64) ([]*model.Conversation, int64, error)
}
