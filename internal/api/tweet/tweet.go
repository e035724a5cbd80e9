package tweet

import (
	"net/http"
	"strconv"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/model"
	"twitter-backend/internal/service"
	"twitter-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type TweetHandler struct {
	tweetService service.TweetServiceInterface
}

func NewTweetHandler(tweetService service.TweetServiceInterface) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// CreateTweet 发推
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req model.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求体", err))
		return
	}

	viewerID := middleware.ViewerID(c)
	tweet, err := h.tweetService.CreateTweet(c.Request.Context(), *viewerID, &req)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": "发推成功",
		"data":    tweet,
	})
}

// GetTweet 查询单条推文，浏览计数同步加一
func (h *TweetHandler) GetTweet(c *gin.Context) {
	tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的推文ID"))
		return
	}

	tweet, err := h.tweetService.GetTweet(c.Request.Context(), tweetID, middleware.ViewerID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, tweet, "获取推文成功")
}

// GetTweetChildren 按类型分页查询子推文
func (h *TweetHandler) GetTweetChildren(c *gin.Context) {
	tweetID, err := primitive.ObjectIDFromHex(c.Param("tweet_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的推文ID"))
		return
	}

	tweetType, err := strconv.Atoi(c.DefaultQuery("tweet_type", "1"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的 tweet_type"))
		return
	}

	pg, err := parsePagination(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	tweets, total, err := h.tweetService.GetTweetChildren(
		c.Request.Context(), tweetID, model.TweetType(tweetType), middleware.ViewerID(c), pg)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"tweets":     tweets,
		"tweet_type": tweetType,
		"page":       pg.Page,
		"limit":      pg.Limit,
		"total":      total,
		"total_page": pg.TotalPages(total),
	}, "获取子推文成功")
}

// GetNewsFeeds 查询当前用户的时间线
func (h *TweetHandler) GetNewsFeeds(c *gin.Context) {
	pg, err := parsePagination(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	viewerID := middleware.ViewerID(c)
	tweets, total, err := h.tweetService.GetNewsFeeds(c.Request.Context(), *viewerID, pg)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("时间线查询完成",
		zap.String("user_id", viewerID.Hex()),
		zap.Int64("total", total))

	errors.HandleSuccess(c, gin.H{
		"tweets":     tweets,
		"page":       pg.Page,
		"limit":      pg.Limit,
		"total":      total,
		"total_page": pg.TotalPages(total),
	}, "获取时间线成功")
}

func parsePagination(c *gin.Context) (service.Pagination, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return service.Pagination{}, errors.New(errors.ErrBadRequest, "无效的 page")
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil {
		return service.Pagination{}, errors.New(errors.ErrBadRequest, "无效的 limit")
	}
	return service.NewPagination(page, limit)
}
