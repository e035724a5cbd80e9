package service

import (
	"context"
	"testing"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchValidation(t *testing.T) {
	svc := NewSearchService(new(MockTweetRepository), new(MockFollowRepository), nil)
	pg, _ := NewPagination(1, 10)
	viewerID := primitive.NewObjectID()

	// 搜索内容不能为空
	_, _, err := svc.Search(context.Background(), &viewerID, "", "", false, pg)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))

	// media_type 只接受 image / video
	_, _, err = svc.Search(context.Background(), &viewerID, "golang", "audio", false, pg)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))

	// people_follow 需要登录
	_, _, err = svc.Search(context.Background(), nil, "golang", "", true, pg)
	assert.Equal(t, errors.ErrBadRequest, errors.CodeOf(err))
}

func TestSearchGuest(t *testing.T) {
	mockTweetRepo := new(MockTweetRepository)
	svc := NewSearchService(mockTweetRepo, new(MockFollowRepository), nil)

	page := []*model.EnrichedTweet{{ID: primitive.NewObjectID(), GuestViews: 2}}
	wantFilter := model.SearchFilter{Content: "golang", MediaType: model.MediaQueryVideo}

	mockTweetRepo.On("SearchTweets", mock.Anything, wantFilter, (*primitive.ObjectID)(nil), int64(0), int64(10)).
		Return(page, int64(1), nil)
	mockTweetRepo.On("IncreaseViews", mock.Anything, mock.Anything, false, mock.Anything).Return(nil)

	pg, _ := NewPagination(1, 10)
	got, total, err := svc.Search(context.Background(), nil, "golang", model.MediaQueryVideo, false, pg)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	// 游客浏览回显到 guest_views
	assert.Equal(t, int64(3), got[0].GuestViews)
}

func TestSearchPeopleFollow(t *testing.T) {
	mockTweetRepo := new(MockTweetRepository)
	mockFollowRepo := new(MockFollowRepository)
	svc := NewSearchService(mockTweetRepo, mockFollowRepo, nil)

	viewerID := primitive.NewObjectID()
	followedID := primitive.NewObjectID()
	wantFilter := model.SearchFilter{
		Content:      "golang",
		FollowedOnly: true,
		AuthorIDs:    []primitive.ObjectID{followedID},
	}

	mockFollowRepo.On("FindFollowedUserIDs", mock.Anything, viewerID).Return([]primitive.ObjectID{followedID}, nil)
	mockTweetRepo.On("SearchTweets", mock.Anything, wantFilter, &viewerID, int64(0), int64(10)).
		Return([]*model.EnrichedTweet{}, int64(0), nil)

	pg, _ := NewPagination(1, 10)
	_, total, err := svc.Search(context.Background(), &viewerID, "golang", "", true, pg)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	mockFollowRepo.AssertExpectations(t)
	mockTweetRepo.AssertExpectations(t)
}

func TestSearchPeopleFollowNobody(t *testing.T) {
	mockTweetRepo := new(MockTweetRepository)
	mockFollowRepo := new(MockFollowRepository)
	svc := NewSearchService(mockTweetRepo, mockFollowRepo, nil)

	viewerID := primitive.NewObjectID()

	// 一个人都没关注时作者集合为空，FollowedOnly 仍然生效，
	// 存储层据此不匹配任何推文
	mockFollowRepo.On("FindFollowedUserIDs", mock.Anything, viewerID).Return([]primitive.ObjectID{}, nil)
	mockTweetRepo.On("SearchTweets", mock.Anything, mock.MatchedBy(func(f model.SearchFilter) bool {
		return f.FollowedOnly && len(f.AuthorIDs) == 0
	}), &viewerID, int64(0), int64(10)).Return([]*model.EnrichedTweet{}, int64(0), nil)

	pg, _ := NewPagination(1, 10)
	_, total, err := svc.Search(context.Background(), &viewerID, "golang", "", true, pg)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	mockTweetRepo.AssertExpectations(t)
}
