package service

import (
	"context"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VisibilityService 判断某个查看者能否看到某条推文。
// 单条推文和批量查询共用同一套规则：批量查询在聚合管道中
// 以等价的过滤条件实现。
type VisibilityService struct {
	users interfaces.UserRepository
}

func NewVisibilityService(users interfaces.UserRepository) *VisibilityService {
	return &VisibilityService{users: users}
}

// CheckVisibility 校验可见性，viewerID 为 nil 表示游客。
// 返回 nil 表示可见；否则返回 Unauthorized / Forbidden / NotFound 类错误。
func (s *VisibilityService) CheckVisibility(ctx context.Context, tweet *model.Tweet, viewerID *primitive.ObjectID) error {
	if tweet.Audience == model.AudienceEveryone {
		return nil
	}

	// Circle 推文要求登录
	if viewerID == nil {
		return errors.New(errors.ErrUnauthorized, "需要访问令牌")
	}

	author, err := s.users.FindByID(ctx, tweet.UserID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询作者失败", err)
	}
	if author == nil || author.Verify == model.UserBanned {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	// 作者本人始终可见，否则必须在作者的 Circle 白名单中
	if author.ID == *viewerID || author.InCircle(*viewerID) {
		return nil
	}
	return errors.New(errors.ErrForbidden, "推文不公开")
}
