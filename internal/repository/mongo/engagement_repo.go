package mongo

import (
	"context"
	"time"

	"twitter-backend/internal/model"
	"twitter-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type likeRepository struct {
	db *mongo.Database
}

func NewLikeRepository(db *mongo.Database) *likeRepository {
	return &likeRepository{db: db}
}

// Like 幂等插入点赞边，重复点赞返回已存在的边
func (r *likeRepository) Like(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Like, error) {
	filter := bson.M{"user_id": userID, "tweet_id": tweetID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    userID,
		"tweet_id":   tweetID,
		"created_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var like model.Like
	if err := r.db.Collection("likes").FindOneAndUpdate(ctx, filter, update, opts).Decode(&like); err != nil {
		util.Logger.Error("点赞失败", zap.Error(err))
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Unlike(ctx context.Context, userID, tweetID primitive.ObjectID) error {
	_, err := r.db.Collection("likes").DeleteOne(ctx, bson.M{
		"user_id":  userID,
		"tweet_id": tweetID,
	})
	return err
}

type bookmarkRepository struct {
	db *mongo.Database
}

func NewBookmarkRepository(db *mongo.Database) *bookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Bookmark(ctx context.Context, userID, tweetID primitive.ObjectID) (*model.Bookmark, error) {
	filter := bson.M{"user_id": userID, "tweet_id": tweetID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    userID,
		"tweet_id":   tweetID,
		"created_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var bookmark model.Bookmark
	if err := r.db.Collection("bookmarks").FindOneAndUpdate(ctx, filter, update, opts).Decode(&bookmark); err != nil {
		util.Logger.Error("收藏失败", zap.Error(err))
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) Unbookmark(ctx context.Context, userID, tweetID primitive.ObjectID) error {
	_, err := r.db.Collection("bookmarks").DeleteOne(ctx, bson.M{
		"user_id":  userID,
		"tweet_id": tweetID,
	})
	return err
}

type followRepository struct {
	db *mongo.Database
}

func NewFollowRepository(db *mongo.Database) *followRepository {
	return &followRepository{db: db}
}

func (r *followRepository) followers() *mongo.Collection {
	return r.db.Collection("followers")
}

func (r *followRepository) Follow(ctx context.Context, userID, followedUserID primitive.ObjectID) error {
	filter := bson.M{"user_id": userID, "followed_user_id": followedUserID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":          userID,
		"followed_user_id": followedUserID,
		"created_at":       time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.followers().UpdateOne(ctx, filter, update, opts)
	if err != nil {
		util.Logger.Error("关注失败", zap.Error(err))
	}
	return err
}

func (r *followRepository) Unfollow(ctx context.Context, userID, followedUserID primitive.ObjectID) error {
	_, err := r.followers().DeleteOne(ctx, bson.M{
		"user_id":          userID,
		"followed_user_id": followedUserID,
	})
	return err
}

func (r *followRepository) FindFollowedUserIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.followers().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var edges []model.Follower
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.FollowedUserID)
	}
	return ids, nil
}

type hashtagRepository struct {
	db *mongo.Database
}

func NewHashtagRepository(db *mongo.Database) *hashtagRepository {
	return &hashtagRepository{db: db}
}

// UpsertMany 按名称逐个插入话题（已存在则复用），返回与 names 等长的ID列表
func (r *hashtagRepository) UpsertMany(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	coll := r.db.Collection("hashtags")
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	ids := make([]primitive.ObjectID, 0, len(names))
	for _, name := range names {
		update := bson.M{"$setOnInsert": bson.M{
			"name":       name,
			"created_at": time.Now(),
		}}

		var hashtag model.Hashtag
		if err := coll.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&hashtag); err != nil {
			util.Logger.Error("插入话题失败", zap.Error(err), zap.String("name", name))
			return nil, err
		}
		ids = append(ids, hashtag.ID)
	}
	return ids, nil
}
