package service

import (
	"context"
	"time"

	"twitter-backend/internal/common"
	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"
	"twitter-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrorRecorder 记录后台任务的失败，供错误监控使用
type ErrorRecorder interface {
	RecordError(err error)
}

// TweetServiceInterface 定义了推文服务的对外接口
type TweetServiceInterface interface {
	CreateTweet(ctx context.Context, userID primitive.ObjectID, req *model.CreateTweetRequest) (*model.Tweet, error)
	GetTweet(ctx context.Context, tweetID primitive.ObjectID, viewerID *primitive.ObjectID) (*model.EnrichedTweet, error)
	GetTweetChildren(ctx context.Context, tweetID primitive.ObjectID, tweetType model.TweetType, viewerID *primitive.ObjectID, pg Pagination) ([]*model.EnrichedTweet, int64, error)
	GetNewsFeeds(ctx context.Context, viewerID primitive.ObjectID, pg Pagination) ([]*model.EnrichedTweet, int64, error)
	IncreaseView(ctx context.Context, tweetID primitive.ObjectID, viewerID *primitive.ObjectID) (*model.TweetViews, error)
}

type TweetService struct {
	tweets     interfaces.TweetRepository
	hashtags   interfaces.HashtagRepository
	follows    interfaces.FollowRepository
	visibility *VisibilityService
	recorder   ErrorRecorder
}

func NewTweetService(
	tweets interfaces.TweetRepository,
	hashtags interfaces.HashtagRepository,
	follows interfaces.FollowRepository,
	visibility *VisibilityService,
	recorder ErrorRecorder,
) *TweetService {
	return &TweetService{
		tweets:     tweets,
		hashtags:   hashtags,
		follows:    follows,
		visibility: visibility,
		recorder:   recorder,
	}
}

// CreateTweet 校验推文约束，按需插入话题，然后写入推文
func (s *TweetService) CreateTweet(ctx context.Context, userID primitive.ObjectID, req *model.CreateTweetRequest) (*model.Tweet, error) {
	if appErr := util.ValidateCreateTweet(req); appErr != nil {
		return nil, appErr
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		id, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			return nil, errors.New(errors.ErrValidation, "parent_id 必须是合法的推文ID")
		}
		parentID = &id
	}

	mentions := make([]primitive.ObjectID, 0, len(req.Mentions))
	for _, mention := range req.Mentions {
		id, err := primitive.ObjectIDFromHex(mention)
		if err != nil {
			return nil, errors.New(errors.ErrValidation, "提及必须是合法的用户ID列表")
		}
		mentions = append(mentions, id)
	}

	hashtagIDs, err := s.hashtags.UpsertMany(ctx, req.Hashtags)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "插入话题失败", err)
	}

	tweet := &model.Tweet{
		UserID:   userID,
		Type:     req.Type,
		Audience: req.Audience,
		ParentID: parentID,
		Content:  req.Content,
		Hashtags: hashtagIDs,
		Mentions: mentions,
		Medias:   req.Medias,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建推文失败", err)
	}
	return tweet, nil
}

// GetTweet 查询单条推文：可见性校验、聚合注解，并同步递增浏览计数。
// 单条路径使用原子的更新并返回，响应中的计数是真实的更新后值。
func (s *TweetService) GetTweet(ctx context.Context, tweetID primitive.ObjectID, viewerID *primitive.ObjectID) (*model.EnrichedTweet, error) {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询推文失败", err)
	}
	if tweet == nil {
		return nil, errors.New(errors.ErrTweetNotFound, "推文不存在")
	}

	if err := s.visibility.CheckVisibility(ctx, tweet, viewerID); err != nil {
		return nil, err
	}

	enriched, err := s.tweets.FindEnrichedByID(ctx, tweetID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询推文失败", err)
	}
	if enriched == nil {
		return nil, errors.New(errors.ErrTweetNotFound, "推文不存在")
	}

	views, err := s.tweets.IncreaseView(ctx, tweetID, viewerID != nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新浏览计数失败", err)
	}
	if views != nil {
		enriched.GuestViews = views.GuestViews
		enriched.UserViews = views.UserViews
		enriched.UpdatedAt = views.UpdatedAt
	}
	return enriched, nil
}

// GetTweetChildren 查询某条推文的子推文。父推文先过可见性校验，
// 子推文在管道中再按可见范围过滤一次。
func (s *TweetService) GetTweetChildren(ctx context.Context, tweetID primitive.ObjectID, tweetType model.TweetType, viewerID *primitive.ObjectID, pg Pagination) ([]*model.EnrichedTweet, int64, error) {
	if !tweetType.IsValid() {
		return nil, 0, errors.New(errors.ErrInvalidTweetType, "无效的推文类型")
	}

	parent, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询推文失败", err)
	}
	if parent == nil {
		return nil, 0, errors.New(errors.ErrTweetNotFound, "推文不存在")
	}
	if err := s.visibility.CheckVisibility(ctx, parent, viewerID); err != nil {
		return nil, 0, err
	}

	tweets, total, err := s.tweets.FindChildren(ctx, tweetID, tweetType, viewerID, pg.Skip(), pg.Limit)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询子推文失败", err)
	}

	echoViews(s.tweets, s.recorder, tweets, viewerID != nil)
	return tweets, total, nil
}

// GetNewsFeeds 查询时间线：候选作者集合为本人加上关注的所有人，
// 再按可见范围过滤
func (s *TweetService) GetNewsFeeds(ctx context.Context, viewerID primitive.ObjectID, pg Pagination) ([]*model.EnrichedTweet, int64, error) {
	followedIDs, err := s.follows.FindFollowedUserIDs(ctx, viewerID)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询关注列表失败", err)
	}
	authorIDs := append(followedIDs, viewerID)

	tweets, total, err := s.tweets.FindNewsFeeds(ctx, authorIDs, viewerID, pg.Skip(), pg.Limit)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询时间线失败", err)
	}

	echoViews(s.tweets, s.recorder, tweets, true)
	return tweets, total, nil
}

// IncreaseView 原子递增单条推文的浏览计数。每次调用递增一次，
// 不做幂等去重，同一渲染重复调用属于调用方错误。
func (s *TweetService) IncreaseView(ctx context.Context, tweetID primitive.ObjectID, viewerID *primitive.ObjectID) (*model.TweetViews, error) {
	views, err := s.tweets.IncreaseView(ctx, tweetID, viewerID != nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新浏览计数失败", err)
	}
	if views == nil {
		return nil, errors.New(errors.ErrTweetNotFound, "推文不存在")
	}
	return views, nil
}

// echoViews 对一页推文批量递增浏览计数。数据库更新在响应路径之外
// 异步执行（带重试，失败记入错误监控），内存中的对象乐观地按
// 更新后的值回显。
func echoViews(tweets interfaces.TweetRepository, recorder ErrorRecorder, page []*model.EnrichedTweet, authenticated bool) {
	if len(page) == 0 {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(page))
	for _, tweet := range page {
		ids = append(ids, tweet.ID)
	}
	now := time.Now()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := common.WithRetry(func() error {
			return tweets.IncreaseViews(ctx, ids, authenticated, now)
		}, 3)
		if err != nil {
			util.Logger.Error("批量更新浏览计数最终失败",
				zap.Error(err),
				zap.Int("count", len(ids)))
			if recorder != nil {
				recorder.RecordError(errors.Wrap(errors.ErrDatabase, "批量更新浏览计数失败", err))
			}
		}
	}()

	for _, tweet := range page {
		if authenticated {
			tweet.UserViews++
		} else {
			tweet.GuestViews++
		}
		tweet.UpdatedAt = now
	}
}
