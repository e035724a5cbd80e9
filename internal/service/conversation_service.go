package service

import (
	"context"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationService 查询私信历史，按时间倒序分页
type ConversationService struct {
	conversations interfaces.ConversationRepository
	users         interfaces.UserRepository
}

func NewConversationService(conversations interfaces.ConversationRepository, users interfaces.UserRepository) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		users:         users,
	}
}

func (s *ConversationService) GetConversations(ctx context.Context, senderID, receiverID primitive.ObjectID, pg Pagination) ([]*model.Conversation, int64, error) {
	receiver, err := s.users.FindByID(ctx, receiverID)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if receiver == nil {
		return nil, 0, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	conversations, total, err := s.conversations.FindBetween(ctx, senderID, receiverID, pg.Skip(), pg.Limit)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询私信失败", err)
	}
	return conversations, total, nil
}
