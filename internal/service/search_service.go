package service

import (
	"context"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchServiceInterface 定义了搜索服务的对外接口
type SearchServiceInterface interface {
	Search(ctx context.Context, viewerID *primitive.ObjectID, content, mediaType string, peopleFollow bool, pg Pagination) ([]*model.EnrichedTweet, int64, error)
}

type SearchService struct {
	tweets   interfaces.TweetRepository
	follows  interfaces.FollowRepository
	recorder ErrorRecorder
}

func NewSearchService(tweets interfaces.TweetRepository, follows interfaces.FollowRepository, recorder ErrorRecorder) *SearchService {
	return &SearchService{
		tweets:   tweets,
		follows:  follows,
		recorder: recorder,
	}
}

// Search 全文搜索推文。游客只能搜到 Everyone 可见范围的内容；
// people_follow 模式把结果限定在查看者关注的作者内，需要登录。
func (s *SearchService) Search(ctx context.Context, viewerID *primitive.ObjectID, content, mediaType string, peopleFollow bool, pg Pagination) ([]*model.EnrichedTweet, int64, error) {
	if content == "" {
		return nil, 0, errors.New(errors.ErrValidation, "搜索内容不能为空")
	}
	if mediaType != "" && mediaType != model.MediaQueryImage && mediaType != model.MediaQueryVideo {
		return nil, 0, errors.New(errors.ErrValidation, "无效的 media_type")
	}
	if peopleFollow && viewerID == nil {
		return nil, 0, errors.New(errors.ErrBadRequest, "people_follow 需要登录")
	}

	filter := model.SearchFilter{
		Content:   content,
		MediaType: mediaType,
	}
	if peopleFollow {
		followedIDs, err := s.follows.FindFollowedUserIDs(ctx, *viewerID)
		if err != nil {
			return nil, 0, errors.Wrap(errors.ErrDatabase, "查询关注列表失败", err)
		}
		filter.FollowedOnly = true
		filter.AuthorIDs = followedIDs
	}

	tweets, total, err := s.tweets.SearchTweets(ctx, filter, viewerID, pg.Skip(), pg.Limit)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "搜索推文失败", err)
	}

	echoViews(s.tweets, s.recorder, tweets, viewerID != nil)
	return tweets, total, nil
}
