package mongo

import (
	"context"

	"twitter-backend/internal/model"
	"twitter-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type conversationRepository struct {
	db *mongo.Database
}

func NewConversationRepository(db *mongo.Database) *conversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindBetween(ctx context.Context, senderID, receiverID primitive.ObjectID, skip, limit int64) ([]*model.Conversation, int64, error) {
	coll := r.db.Collection("conversations")
	filter := bson.M{
		"$or": []bson.M{
			{"from_user_id": senderID, "to_user_id": receiverID},
			{"from_user_id": receiverID, "to_user_id": senderID},
		},
	}

	var (
		conversations []*model.Conversation
		total         int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetSkip(skip).
			SetLimit(limit)
		cursor, err := coll.Find(gctx, filter, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &conversations)
	})
	g.Go(func() error {
		var err error
		total, err = coll.CountDocuments(gctx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		util.Logger.Error("查询私信失败", zap.Error(err))
		return nil, 0, err
	}
	if conversations == nil {
		conversations = []*model.Conversation{}
	}
	return conversations, total, nil
}
