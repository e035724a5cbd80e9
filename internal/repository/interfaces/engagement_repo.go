package interfaces

import (
	"context"

	"twitter-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeRepository 定义了点赞边的数据库操作接口。
// Like 是幂等插入，重复点赞返回已存在的边。
type LikeRepository interface {
	Like(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Like, error)
	Unlike(ctx context.Context, userID, tweetID primitive.ObjectID) error
}

// BookmarkRepository 定义了收藏边的数据库操作接口
type BookmarkRepository interface {
	Bookmark(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Bookmark, error)
	Unbookmark(ctx context.Context, userID, tweetID primitive.ObjectID) error
}

// FollowRepository 定义了关注边的数据库操作接口
type FollowRepository interface {
	Follow(ctx context.Context, userID, followedUserID primitive.ObjectID) error
	Unfollow(ctx context.Context, userID, followedUserID primitive.ObjectID) error
	// FindFollowedUserIDs 查询某用户关注的所有用户ID，用于构建时间线的候选作者集合
	FindFollowedUserIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// HashtagRepository 定义了话题的数据库操作接口
type HashtagRepository interface {
	// UpsertMany 按名称批量插入话题（已存在则复用），返回与 names 等长的ID列表
	UpsertMany(ctx context.Context, names []string) ([]primitive.ObjectID, error)
}
