package service

import (
	"context"
	"testing"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCheckVisibilityEveryone(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewVisibilityService(mockUserRepo)

	tweet := &model.Tweet{
		ID:       primitive.NewObjectID(),
		UserID:   primitive.NewObjectID(),
		Audience: model.AudienceEveryone,
	}

	// Everyone 推文游客也可见，不需要查询作者
	err := svc.CheckVisibility(context.Background(), tweet, nil)
	assert.NoError(t, err)

	viewerID := primitive.NewObjectID()
	err = svc.CheckVisibility(context.Background(), tweet, &viewerID)
	assert.NoError(t, err)

	mockUserRepo.AssertNotCalled(t, "FindByID")
}

func TestCheckVisibilityCircleGuest(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewVisibilityService(mockUserRepo)

	tweet := &model.Tweet{
		ID:       primitive.NewObjectID(),
		UserID:   primitive.NewObjectID(),
		Audience: model.AudienceTwitterCircle,
	}

	err := svc.CheckVisibility(context.Background(), tweet, nil)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
}

func TestCheckVisibilityCircleAuthor(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewVisibilityService(mockUserRepo)

	authorID := primitive.NewObjectID()
	author := &model.User{
		ID:     authorID,
		Verify: model.UserVerified,
		// 作者不在自己的白名单里也能看到自己的推文
		TwitterCircle: []primitive.ObjectID{},
	}
	mockUserRepo.On("FindByID", context.Background(), authorID).Return(author, nil)

	tweet := &model.Tweet{
		ID:       primitive.NewObjectID(),
		UserID:   authorID,
		Audience: model.AudienceTwitterCircle,
	}

	err := svc.CheckVisibility(context.Background(), tweet, &authorID)
	assert.NoError(t, err)
}

func TestCheckVisibilityCircleMember(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewVisibilityService(mockUserRepo)

	authorID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	strangerID := primitive.NewObjectID()
	author := &model.User{
		ID:            authorID,
		Verify:        model.UserVerified,
		TwitterCircle: []primitive.ObjectID{memberID},
	}
	mockUserRepo.On("FindByID", context.Background(), authorID).Return(author, nil)

	tweet := &model.Tweet{
		ID:       primitive.NewObjectID(),
		UserID:   authorID,
		Audience: model.AudienceTwitterCircle,
	}

	// 白名单内可见
	err := svc.CheckVisibility(context.Background(), tweet, &memberID)
	assert.NoError(t, err)

	// 白名单外不可见
	err = svc.CheckVisibility(context.Background(), tweet, &strangerID)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrForbidden, errors.CodeOf(err))
}

func TestCheckVisibilityBannedAuthor(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewVisibilityService(mockUserRepo)

	authorID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	author := &model.User{
		ID:            authorID,
		Verify:        model.UserBanned,
		TwitterCircle: []primitive.ObjectID{memberID},
	}
	mockUserRepo.On("FindByID", context.Background(), authorID).Return(author, nil)

	tweet := &model.Tweet{
		ID:       primitive.NewObjectID(),
		UserID:   authorID,
		Audience: model.AudienceTwitterCircle,
	}

	// 作者被封禁时即使在白名单内也返回用户不存在
	err := svc.CheckVisibility(context.Background(), tweet, &memberID)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserNotFound, errors.CodeOf(err))
}

func TestCheckVisibilityAuthorMissing(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := NewVisibilityService(mockUserRepo)

	authorID := primitive.NewObjectID()
	viewerID := primitive.NewObjectID()
	mockUserRepo.On("FindByID", context.Background(), authorID).Return(nil, nil)

	tweet := &model.Tweet{
		ID:       primitive.NewObjectID(),
		UserID:   authorID,
		Audience: model.AudienceTwitterCircle,
	}

	err := svc.CheckVisibility(context.Background(), tweet, &viewerID)
	assert.Error(t, err)
	assert.Equal(t, errors.ErrUserNotFound, errors.CodeOf(err))
}
