package service

import (
	"context"
	"time"

	"twitter-backend/internal/model"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTweetRepository 是 TweetRepository 接口的模拟实现
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *MockTweetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *MockTweetRepository) FindEnrichedByID(ctx context.Context, id primitive.ObjectID) (*model.EnrichedTweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EnrichedTweet), args.Error(1)
}

func (m *MockTweetRepository) FindChildren(ctx context.Context, parentID primitive.ObjectID, tweetType model.TweetType, viewerID *primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error) {
	args := m.Called(ctx, parentID, tweetType, viewerID, skip, limit)
	return args.Get(0).([]*model.EnrichedTweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) FindNewsFeeds(ctx context.Context, authorIDs []primitive.ObjectID, viewerID primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error) {
	args := m.Called(ctx, authorIDs, viewerID, skip, limit)
	return args.Get(0).([]*model.EnrichedTweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) SearchTweets(ctx context.Context, filter model.SearchFilter, viewerID *primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error) {
	args := m.Called(ctx, filter, viewerID, skip, limit)
	return args.Get(0).([]*model.EnrichedTweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) IncreaseView(ctx context.Context, id primitive.ObjectID, authenticated bool) (*model.TweetViews, error) {
	args := m.Called(ctx, id, authenticated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TweetViews), args.Error(1)
}

func (m *MockTweetRepository) IncreaseViews(ctx context.Context, ids []primitive.ObjectID, authenticated bool, at time.Time) error {
	args := m.Called(ctx, ids, authenticated, at)
	return args.Error(0)
}

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockFollowRepository 是 FollowRepository 接口的模拟实现
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, userID, followedUserID primitive.ObjectID) error {
	args := m.Called(ctx, userID, followedUserID)
	return args.Error(0)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, userID, followedUserID primitive.ObjectID) error {
	args := m.Called(ctx, userID, followedUserID)
	return args.Error(0)
}

func (m *MockFollowRepository) FindFollowedUserIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

// MockHashtagRepository 是 HashtagRepository 接口的模拟实现
type MockHashtagRepository struct {
	mock.Mock
}

func (m *MockHashtagRepository) UpsertMany(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

// MockLikeRepository 是 LikeRepository 接口的模拟实现
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Like(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Like, error) {
	args := m.Called(ctx, userID, tweetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Like), args.Error(1)
}

func (m *MockLikeRepository) Unlike(ctx context.Context, userID, tweetID primitive.ObjectID) error {
	args := m.Called(ctx, userID, tweetID)
	return args.Error(0)
}

// MockBookmarkRepository 是 BookmarkRepository 接口的模拟实现
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) Bookmark(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Bookmark, error) {
	args := m.Called(ctx, userID, tweetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) Unbookmark(ctx context.Context, userID, tweetID primitive.ObjectID) error {
	args := m.Called(ctx, userID, tweetID)
	return args.Error(0)
}
