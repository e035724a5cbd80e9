package search

import (
	"strconv"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService service.SearchServiceInterface
}

func NewSearchHandler(searchService service.SearchServiceInterface) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search 全文搜索推文
func (h *SearchHandler) Search(c *gin.Context) {
	content := c.Query("content")
	mediaType := c.Query("media_type")
	peopleFollow := c.Query("people_follow") == "true" || c.Query("people_follow") == "1"

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

	tweets, total, err := h.searchService.Search(
		c.Request.Context(), middleware.ViewerID(c), content, mediaType, peopleFollow, pg)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"tweets":     tweets,
		"page":       pg.Page,
		"limit":      pg.Limit,
		"total":      total,
		"total_page": pg.TotalPages(total),
	}, "搜索成功")
}
