package service

import (
	"context"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementService 处理点赞、收藏和关注。点赞和收藏都是
// 幂等插入，重复操作不产生重复的边。
type EngagementService struct {
	likes     interfaces.LikeRepository
	bookmarks interfaces.BookmarkRepository
	follows   interfaces.FollowRepository
	tweets    interfaces.TweetRepository
	users     interfaces.UserRepository
}

func NewEngagementService(
	likes interfaces.LikeRepository,
	bookmarks interfaces.BookmarkRepository,
	follows interfaces.FollowRepository,
	tweets interfaces.TweetRepository,
	users interfaces.UserRepository,
) *EngagementService {
	return &EngagementService{
		likes:     likes,
		bookmarks: bookmarks,
		follows:   follows,
		tweets:    tweets,
		users:     users,
	}
}

func (s *EngagementService) requireTweet(ctx context.Context, tweetID primitive.ObjectID) error {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询推文失败", err)
	}
	if tweet == nil {
		return errors.New(errors.ErrTweetNotFound, "推文不存在")
	}
	return nil
}

func (s *EngagementService) Like(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Like, error) {
	if err := s.requireTweet(ctx, tweetID); err != nil {
		return nil, err
	}
	like, err := s.likes.Like(ctx, userID, tweetID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "点赞失败", err)
	}
	return like, nil
}

func (s *EngagementService) Unlike(ctx context.Context, userID, tweetID primitive.ObjectID) error {
	if err := s.likes.Unlike(ctx, userID, tweetID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "取消点赞失败", err)
	}
	return nil
}

func (s *EngagementService) Bookmark(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Bookmark, error) {
	if err := s.requireTweet(ctx, tweetID); err != nil {
		return nil, err
	}
	bookmark, err := s.bookmarks.Bookmark(ctx, userID, tweetID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "收藏失败", err)
	}
	return bookmark, nil
}

func (s *EngagementService) Unbookmark(ctx context.Context, userID, tweetID primitive.ObjectID) error {
	if err := s.bookmarks.Unbookmark(ctx, userID, tweetID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "取消收藏失败", err)
	}
	return nil
}

func (s *EngagementService) Follow(ctx context.Context, userID, followedUserID primitive.ObjectID) error {
	if userID == followedUserID {
		return errors.New(errors.ErrValidation, "不能关注自己")
	}

	followed, err := s.users.FindByID(ctx, followedUserID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if followed == nil || followed.Verify == model.UserBanned {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	if err := s.follows.Follow(ctx, userID, followedUserID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "关注失败", err)
	}
	return nil
}

func (s *EngagementService) Unfollow(ctx context.Context, userID, followedUserID primitive.ObjectID) error {
	if err := s.follows.Unfollow(ctx, userID, followedUserID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "取消关注失败", err)
	}
	return nil
}
