package bookmark

import (
	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookmarkHandler struct {
	engagementService *service.EngagementService
}

func NewBookmarkHandler(engagementService *service.EngagementService) *BookmarkHandler {
	return &BookmarkHandler{engagementService: engagementService}
}

// BookmarkRequest 收藏请求体
type BookmarkRequest struct {
	TweetID string `json:"tweet_id" binding:"required,objectid"`
}

// Bookmark 收藏推文，重复收藏是幂等的
func (h *BookmarkHandler) Bookmark(c *gin.Context) {
	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求体", err))
		return
	}
	tweetID, _ := primitive.ObjectIDFromHex(req.TweetID)

	viewerID := middleware.ViewerID(c)
	bookmark, err := h.engagementService.Bookmark(c.Request.Context(), *viewerID, tweetID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, bookmark, "收藏成功")
}

// Unbookmark 取消收藏
func (h *BookmarkHandler) Unbookmark(c *gin.Context) {
	tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的推文ID"))
		return
	}

	viewerID := middleware.ViewerID(c)
	if err := h.engagementService.Unbookmark(c.Request.Context(), *viewerID, tweetID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "取消收藏成功")
}
