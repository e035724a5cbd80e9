package util

import (
	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidateObjectID 供 binding 使用的 ObjectID 格式校验器
func ValidateObjectID(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return primitive.IsValidObjectID(value)
}

// ValidateCreateTweet 校验发推请求体的跨字段约束
func ValidateCreateTweet(req *model.CreateTweetRequest) *errors.AppError {
	if !req.Type.IsValid() {
		return errors.New(errors.ErrInvalidTweetType, "无效的推文类型")
	}
	if !req.Audience.IsValid() {
		return errors.New(errors.ErrInvalidAudience, "无效的可见范围")
	}

	// parent_id 为空当且仅当类型为原创推文
	switch req.Type {
	case model.TweetTypeTweet:
		if req.ParentID != "" {
			return errors.New(errors.ErrValidation, "原创推文的 parent_id 必须为空")
		}
	default:
		if !primitive.IsValidObjectID(req.ParentID) {
			return errors.New(errors.ErrValidation, "parent_id 必须是合法的推文ID")
		}
	}

	// 转推内容必须为空；其余类型在无话题和提及时内容不能为空
	if req.Type == model.TweetTypeRetweet {
		if req.Content != "" {
			return errors.New(errors.ErrValidation, "转推的内容必须为空字符串")
		}
	} else if req.Content == "" && len(req.Hashtags) == 0 && len(req.Mentions) == 0 {
		return errors.New(errors.ErrValidation, "推文内容不能为空")
	}

	for _, mention := range req.Mentions {
		if !primitive.IsValidObjectID(mention) {
			return errors.New(errors.ErrValidation, "提及必须是合法的用户ID列表")
		}
	}

	for _, media := range req.Medias {
		if !media.Type.IsValid() {
			return errors.New(errors.ErrValidation, "无效的媒体类型")
		}
		if media.URL == "" || len(media.URL) > 200 {
			return errors.New(errors.ErrValidation, "媒体URL长度必须在1到200之间")
		}
	}

	return nil
}
