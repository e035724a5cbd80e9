package like

import (
	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LikeHandler struct {
	engagementService *service.EngagementService
}

func NewLikeHandler(engagementService *service.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// LikeRequest 点赞请求体
type LikeRequest struct {
	TweetID string `json:"tweet_id" binding:"required,objectid"`
}

// Like 点赞推文，重复点赞是幂等的
func (h *LikeHandler) Like(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求体", err))
		return
	}
	tweetID, _ := primitive.ObjectIDFromHex(req.TweetID)

	viewerID := middleware.ViewerID(c)
	like, err := h.engagementService.Like(c.Request.Context(), *viewerID, tweetID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, like, "点赞成功")
}

// Unlike 取消点赞
func (h *LikeHandler) Unlike(c *gin.Context) {
	tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的推文ID"))
		return
	}

	viewerID := middleware.ViewerID(c)
	if err := h.engagementService.Unlike(c.Request.Context(), *viewerID, tweetID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "取消点赞成功")
}
