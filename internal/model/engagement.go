package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like 点赞边，(user_id, tweet_id) 唯一
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	TweetID   primitive.ObjectID `bson:"tweet_id" json:"tweet_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Bookmark 收藏边，(user_id, tweet_id) 唯一
type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	TweetID   primitive.ObjectID `bson:"tweet_id" json:"tweet_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Follower 关注边，(user_id, followed_user_id) 唯一
type Follower struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	FollowedUserID primitive.ObjectID `bson:"followed_user_id" json:"followed_user_id"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// Hashtag 话题，按名称唯一，发推时按需插入
type Hashtag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
