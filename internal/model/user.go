package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户文档。TwitterCircle 是作者维护的允许查看
// Circle 推文的用户ID白名单。
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name          string               `bson:"name" json:"name"`
	Username      string               `bson:"username" json:"username"`
	Email         string               `bson:"email" json:"email"`
	PasswordHash  string               `bson:"password" json:"-"`
	Verify        UserVerifyStatus     `bson:"verify" json:"verify"`
	Bio           string               `bson:"bio" json:"bio"`
	Location      string               `bson:"location" json:"location"`
	Website       string               `bson:"website" json:"website"`
	AvatarURL     string               `bson:"avatar" json:"avatar"`
	TwitterCircle []primitive.ObjectID `bson:"twitter_circle" json:"-"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updated_at"`
}

// UserSummary 对外展示的作者/提及摘要，不含任何秘密字段
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

// InCircle 判断某个用户是否在作者的 Circle 白名单中
func (u *User) InCircle(userID primitive.ObjectID) bool {
	for _, id := range u.TwitterCircle {
		if id == userID {
			return true
		}
	}
	return false
}
