package tweet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/service"
	"twitter-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
	os.Exit(m.Run())
}

// MockTweetService 是 TweetServiceInterface 的模拟实现
type MockTweetService struct {
	mock.Mock
}

func (m *MockTweetService) CreateTweet(ctx context.Context, userID primitive.ObjectID, req *model.CreateTweetRequest) (*model.Tweet, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *MockTweetService) GetTweet(ctx context.Context, tweetID primitive.ObjectID, viewerID *primitive.ObjectID) (*model.EnrichedTweet, error) {
	args := m.Called(ctx, tweetID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EnrichedTweet), args.Error(1)
}

func (m *MockTweetService) GetTweetChildren(ctx context.Context, tweetID primitive.ObjectID, tweetType model.TweetType, viewerID *primitive.ObjectID, pg service.Pagination) ([]*model.EnrichedTweet, int64, error) {
	args := m.Called(ctx, tweetID, tweetType, viewerID, pg)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.EnrichedTweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetService) GetNewsFeeds(ctx context.Context, viewerID primitive.ObjectID, pg service.Pagination) ([]*model.EnrichedTweet, int64, error) {
	args := m.Called(ctx, viewerID, pg)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.EnrichedTweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetService) IncreaseView(ctx context.Context, tweetID primitive.ObjectID, viewerID *primitive.ObjectID) (*model.TweetViews, error) {
	args := m.Called(ctx, tweetID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TweetViews), args.Error(1)
}

// setupRouter 构造测试路由。viewerID 不为 nil 时模拟登录态，
// 与认证中间件写入的上下文键保持一致。
func setupRouter(svc service.TweetServiceInterface, viewerID *primitive.ObjectID) *gin.Engine {
	router := gin.New()
	if viewerID != nil {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", *viewerID)
			c.Set("verify", int(model.UserVerified))
			c.Next()
		})
	}

	handler := NewTweetHandler(svc)
	router.POST("/api/tweets", handler.CreateTweet)
	router.GET("/api/tweets", handler.GetNewsFeeds)
	router.GET("/api/tweets/:tweet_id", handler.GetTweet)
	router.GET("/api/tweets/:tweet_id/children", handler.GetTweetChildren)
	return router
}

func TestGetTweetHandler(t *testing.T) {
	mockSvc := new(MockTweetService)
	router := setupRouter(mockSvc, nil)

	tweetID := primitive.NewObjectID()
	enriched := &model.EnrichedTweet{ID: tweetID, Content: "hello", GuestViews: 3}
	mockSvc.On("GetTweet", mock.Anything, tweetID, (*primitive.ObjectID)(nil)).Return(enriched, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tweets/"+tweetID.Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp errors.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "hello", data["content"])
	assert.Equal(t, float64(3), data["guest_views"])
}

func TestGetTweetHandlerBadID(t *testing.T) {
	router := setupRouter(new(MockTweetService), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tweets/not-an-id", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTweetHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"未找到", errors.New(errors.ErrTweetNotFound, "推文不存在"), http.StatusNotFound},
		{"需要登录", errors.New(errors.ErrUnauthorized, "需要访问令牌"), http.StatusUnauthorized},
		{"不公开", errors.New(errors.ErrForbidden, "推文不公开"), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := new(MockTweetService)
			router := setupRouter(mockSvc, nil)

			tweetID := primitive.NewObjectID()
			mockSvc.On("GetTweet", mock.Anything, tweetID, (*primitive.ObjectID)(nil)).Return(nil, tc.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/api/tweets/"+tweetID.Hex(), nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestGetTweetChildrenHandler(t *testing.T) {
	mockSvc := new(MockTweetService)
	viewerID := primitive.NewObjectID()
	router := setupRouter(mockSvc, &viewerID)

	tweetID := primitive.NewObjectID()
	page := []*model.EnrichedTweet{{ID: primitive.NewObjectID()}}
	pg, _ := service.NewPagination(2, 5)
	mockSvc.On("GetTweetChildren", mock.Anything, tweetID, model.TweetTypeComment, &viewerID, pg).
		Return(page, int64(11), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tweets/"+tweetID.Hex()+"/children?tweet_type=2&page=2&limit=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp errors.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(11), data["total"])
	assert.Equal(t, float64(3), data["total_page"])
}

func TestGetTweetChildrenHandlerBadPagination(t *testing.T) {
	router := setupRouter(new(MockTweetService), nil)

	tweetID := primitive.NewObjectID()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tweets/"+tweetID.Hex()+"/children?limit=0", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNewsFeedsHandler(t *testing.T) {
	mockSvc := new(MockTweetService)
	viewerID := primitive.NewObjectID()
	router := setupRouter(mockSvc, &viewerID)

	page := []*model.EnrichedTweet{{ID: primitive.NewObjectID()}, {ID: primitive.NewObjectID()}}
	pg, _ := service.NewPagination(1, 10)
	mockSvc.On("GetNewsFeeds", mock.Anything, viewerID, pg).Return(page, int64(2), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/tweets", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp errors.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Len(t, data["tweets"], 2)
	assert.Equal(t, float64(1), data["total_page"])
}

func TestCreateTweetHandler(t *testing.T) {
	mockSvc := new(MockTweetService)
	viewerID := primitive.NewObjectID()
	router := setupRouter(mockSvc, &viewerID)

	created := &model.Tweet{ID: primitive.NewObjectID(), UserID: viewerID, Content: "hello"}
	mockSvc.On("CreateTweet", mock.Anything, viewerID, mock.AnythingOfType("*model.CreateTweetRequest")).
		Return(created, nil)

	body := `{"type":0,"audience":0,"content":"hello","hashtags":[],"mentions":[],"medias":[]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/tweets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}
