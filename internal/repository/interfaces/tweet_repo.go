package interfaces

import (
	"context"
	"time"

	"twitter-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TweetRepository 定义了推文相关的数据库操作接口。
// 所有分页查询返回当前页数据和满足同一过滤条件的总数，
// 两个查询使用结构相同的管道并发执行。
type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
	FindEnrichedByID(ctx context.Context, id primitive.ObjectID) (*model.EnrichedTweet, error)

	// FindChildren 按类型查询某条推文的子推文（回复/转推/引用），
	// viewerID 为 nil 表示游客，只能看到 audience 为 Everyone 的子推文
	FindChildren(ctx context.Context, parentID primitive.ObjectID, tweetType model.TweetType, viewerID *primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error)

	// FindNewsFeeds 查询候选作者集合（本人+关注的人）的推文
	FindNewsFeeds(ctx context.Context, authorIDs []primitive.ObjectID, viewerID primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error)

	// SearchTweets 全文搜索，filter 中的媒体类型和作者范围为可选条件
	SearchTweets(ctx context.Context, filter model.SearchFilter, viewerID *primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error)

	// IncreaseView 原子递增单条推文的浏览计数并返回更新后的值
	IncreaseView(ctx context.Context, id primitive.ObjectID, authenticated bool) (*model.TweetViews, error)

	// IncreaseViews 批量递增一页推文的浏览计数
	IncreaseViews(ctx context.Context, ids []primitive.ObjectID, authenticated bool, at time.Time) error
}
