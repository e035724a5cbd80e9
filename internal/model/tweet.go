package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media 推文附带的媒体描述
type Media struct {
	URL  string    `bson:"url" json:"url"`
	Type MediaType `bson:"type" json:"type"`
}

// Tweet 推文文档。parent_id 为空当且仅当类型为原创推文；
// 转推的 content 必须为空字符串。
type Tweet struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Type       TweetType            `bson:"type" json:"type"`
	Audience   TweetAudience        `bson:"audience" json:"audience"`
	ParentID   *primitive.ObjectID  `bson:"parent_id" json:"parent_id"`
	Content    string               `bson:"content" json:"content"`
	Hashtags   []primitive.ObjectID `bson:"hashtags" json:"hashtags"`
	Mentions   []primitive.ObjectID `bson:"mentions" json:"mentions"`
	Medias     []Media              `bson:"medias" json:"medias"`
	GuestViews int64                `bson:"guest_views" json:"guest_views"`
	UserViews  int64                `bson:"user_views" json:"user_views"`
	CreatedAt  time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at" json:"updated_at"`
}

// TweetViews 浏览计数更新后的结果
type TweetViews struct {
	GuestViews int64     `bson:"guest_views" json:"guest_views"`
	UserViews  int64     `bson:"user_views" json:"user_views"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// EnrichedTweet 聚合管道输出的推文：作者摘要、话题、提及和各类计数
// 均在查询时现算，不做持久化缓存。
type EnrichedTweet struct {
	ID           primitive.ObjectID  `bson:"_id" json:"_id"`
	UserID       primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Type         TweetType           `bson:"type" json:"type"`
	Audience     TweetAudience       `bson:"audience" json:"audience"`
	ParentID     *primitive.ObjectID `bson:"parent_id" json:"parent_id"`
	Content      string              `bson:"content" json:"content"`
	Hashtags     []Hashtag           `bson:"hashtags" json:"hashtags"`
	Mentions     []UserSummary       `bson:"mentions" json:"mentions"`
	Medias       []Media             `bson:"medias" json:"medias"`
	Author       *UserSummary        `bson:"author" json:"author"`
	Bookmarks    int64               `bson:"bookmarks" json:"bookmarks"`
	Likes        int64               `bson:"likes" json:"likes"`
	RetweetCount int64               `bson:"retweet_count" json:"retweet_count"`
	CommentCount int64               `bson:"comment_count" json:"comment_count"`
	QuoteCount   int64               `bson:"quote_count" json:"quote_count"`
	GuestViews   int64               `bson:"guest_views" json:"guest_views"`
	UserViews    int64               `bson:"user_views" json:"user_views"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// CreateTweetRequest 发推请求体
type CreateTweetRequest struct {
	Type     TweetType     `json:"type"`
	Audience TweetAudience `json:"audience"`
	ParentID string        `json:"parent_id"`
	Content  string        `json:"content"`
	Hashtags []string      `json:"hashtags"`
	Mentions []string      `json:"mentions"`
	Medias   []Media       `json:"medias"`
}

// SearchFilter 搜索的过滤条件，由服务层组装后传给存储层
type SearchFilter struct {
	Content   string
	MediaType string
	// FollowedOnly 为 true 时只匹配 AuthorIDs 中作者的推文；
	// AuthorIDs 为空则不匹配任何推文（查看者没有关注任何人）
	FollowedOnly bool
	AuthorIDs    []primitive.ObjectID
}
