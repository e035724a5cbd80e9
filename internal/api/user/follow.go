package user

import (
	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FollowHandler struct {
	engagementService *service.EngagementService
}

func NewFollowHandler(engagementService *service.EngagementService) *FollowHandler {
	return &FollowHandler{engagementService: engagementService}
}

// FollowRequest 关注请求体
type FollowRequest struct {
	FollowedUserID string `json:"followed_user_id" binding:"required,objectid"`
}

// Follow 关注用户
func (h *FollowHandler) Follow(c *gin.Context) {
	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求体", err))
		return
	}
	followedUserID, _ := primitive.ObjectIDFromHex(req.FollowedUserID)

	viewerID := middleware.ViewerID(c)
	if err := h.engagementService.Follow(c.Request.Context(), *viewerID, followedUserID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "关注成功")
}

// Unfollow 取消关注
func (h *FollowHandler) Unfollow(c *gin.Context) {
	followedUserID, err := primitive.ObjectIDFromHex(c.Param("followed_user_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的用户ID"))
		return
	}

	viewerID := middleware.ViewerID(c)
	if err := h.engagementService.Unfollow(c.Request.Context(), *viewerID, followedUserID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "取消关注成功")
}
