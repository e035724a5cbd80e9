package conversation

import (
	"strconv"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConversationHandler struct {
	conversationService *service.ConversationService
}

func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// GetConversations 分页查询当前用户与某个用户之间的私信历史
func (h *ConversationHandler) GetConversations(c *gin.Context) {
	receiverID, err := primitive.ObjectIDFromHex(c.Param("receiver_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的用户ID"))
		return
	}

	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的 page"))
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的 limit"))
		return
	}
	pg, err := service.NewPagination(page, limit)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	viewerID := middleware.ViewerID(c)
	conversations, total, err := h.conversationService.GetConversations(
		c.Request.Context(), *viewerID, receiverID, pg)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"conversations": conversations,
		"page":          pg.Page,
		"limit":         pg.Limit,
		"total":         total,
		"total_page":    pg.TotalPages(total),
	}, "获取私信成功")
}
