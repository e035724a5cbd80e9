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
	"golang.org/x/sync/errgroup"
)

type tweetRepository struct {
	db *mongo.Database
}

func NewTweetRepository(db *mongo.Database) *tweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) tweets() *mongo.Collection {
	return r.db.Collection("tweets")
}

func (r *tweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	now := time.Now()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now
	if tweet.Hashtags == nil {
		tweet.Hashtags = []primitive.ObjectID{}
	}
	if tweet.Mentions == nil {
		tweet.Mentions = []primitive.ObjectID{}
	}
	if tweet.Medias == nil {
		tweet.Medias = []model.Media{}
	}

	result, err := r.tweets().InsertOne(ctx, tweet)
	if err != nil {
		util.Logger.Error("创建推文失败", zap.Error(err))
		return err
	}
	tweet.ID = result.InsertedID.(primitive.ObjectID)
	util.Logger.Info("推文创建成功", zap.String("tweet_id", tweet.ID.Hex()))
	return nil
}

func (r *tweetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.tweets().FindOne(ctx, bson.M{"_id": id}).Decode(&tweet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) FindEnrichedByID(ctx context.Context, id primitive.ObjectID) (*model.EnrichedTweet, error) {
	pipeline := []bson.M{{"$match": bson.M{"_id": id}}}
	pipeline = append(pipeline, authorStages()...)
	pipeline = append(pipeline, enrichStages()...)

	cursor, err := r.tweets().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.EnrichedTweet
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *tweetRepository) FindChildren(ctx context.Context, parentID primitive.ObjectID, tweetType model.TweetType, viewerID *primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error) {
	match := bson.M{
		"parent_id": parentID,
		"type":      tweetType,
	}
	return r.findPage(ctx, match, viewerID, skip, limit)
}

func (r *tweetRepository) FindNewsFeeds(ctx context.Context, authorIDs []primitive.ObjectID, viewerID primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error) {
	match := bson.M{
		"user_id": bson.M{"$in": authorIDs},
	}
	return r.findPage(ctx, match, &viewerID, skip, limit)
}

func (r *tweetRepository) SearchTweets(ctx context.Context, filter model.SearchFilter, viewerID *primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error) {
	return r.findPage(ctx, searchMatch(filter), viewerID, skip, limit)
}

// searchMatch 把搜索条件翻译成 $match 文档：全文检索，media_type
// 的 video 同时覆盖普通视频和 HLS，follow-only 模式限定作者集合
// （集合为空则不匹配任何推文）。
func searchMatch(filter model.SearchFilter) bson.M {
	match := bson.M{
		"$text": bson.M{"$search": filter.Content},
	}
	switch filter.MediaType {
	case model.MediaQueryImage:
		match["medias.type"] = model.MediaTypeImage
	case model.MediaQueryVideo:
		match["medias.type"] = bson.M{"$in": []model.MediaType{model.MediaTypeVideo, model.MediaTypeHLS}}
	}
	if filter.FollowedOnly {
		authorIDs := filter.AuthorIDs
		if authorIDs == nil {
			authorIDs = []primitive.ObjectID{}
		}
		match["user_id"] = bson.M{"$in": authorIDs}
	}
	return match
}

// findPage 并发执行分页查询和总数查询。两个管道共享完全相同的
// match / 作者关联 / 可见范围过滤阶段，保证总数与返回数据的
// 过滤条件一致。
func (r *tweetRepository) findPage(ctx context.Context, match bson.M, viewerID *primitive.ObjectID, skip, limit int64) ([]*model.EnrichedTweet, int64, error) {
	pagePipeline, countPipeline := pagePipelines(match, viewerID, skip, limit)

	var (
		tweets []*model.EnrichedTweet
		total  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := r.tweets().Aggregate(gctx, pagePipeline)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)
		return cursor.All(gctx, &tweets)
	})
	g.Go(func() error {
		cursor, err := r.tweets().Aggregate(gctx, countPipeline)
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)

		var counts []struct {
			Total int64 `bson:"total"`
		}
		if err := cursor.All(gctx, &counts); err != nil {
			return err
		}
		if len(counts) > 0 {
			total = counts[0].Total
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		util.Logger.Error("查询推文列表失败", zap.Error(err))
		return nil, 0, err
	}
	if tweets == nil {
		tweets = []*model.EnrichedTweet{}
	}
	return tweets, total, nil
}

func (r *tweetRepository) IncreaseView(ctx context.Context, id primitive.ObjectID, authenticated bool) (*model.TweetViews, error) {
	field := "guest_views"
	if authenticated {
		field = "user_views"
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"guest_views": 1, "user_views": 1, "updated_at": 1})

	var views model.TweetViews
	err := r.tweets().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{field: 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&views)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		util.Logger.Error("更新浏览计数失败", zap.Error(err), zap.String("tweet_id", id.Hex()))
		return nil, err
	}
	return &views, nil
}

func (r *tweetRepository) IncreaseViews(ctx context.Context, ids []primitive.ObjectID, authenticated bool, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	field := "guest_views"
	if authenticated {
		field = "user_views"
	}

	// 失败由调用方在重试耗尽后统一记录
	_, err := r.tweets().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{
			"$inc": bson.M{field: 1},
			"$set": bson.M{"updated_at": at},
		},
	)
	return err
}

// pagePipelines 从同一个过滤头部构造分页管道和总数管道：
// 头部是 match、作者关联和可见范围过滤；分页管道在其后追加
// 排序/跳页/截断和计数注解，总数管道只追加 $count。
func pagePipelines(match bson.M, viewerID *primitive.ObjectID, skip, limit int64) (page, count []bson.M) {
	head := []bson.M{{"$match": match}}
	head = append(head, authorStages()...)
	head = append(head, audienceStage(viewerID))

	page = append(append([]bson.M{}, head...),
		bson.M{"$sort": bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		bson.M{"$skip": skip},
		bson.M{"$limit": limit},
	)
	page = append(page, enrichStages()...)

	count = append(append([]bson.M{}, head...), bson.M{"$count": "total"})
	return page, count
}

// authorStages 关联作者并展开为单个文档
func authorStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}},
		{"$unwind": bson.M{"path": "$author"}},
	}
}

// audienceStage 构造可见范围过滤阶段：
// Everyone 对所有人可见；Circle 只对作者本人和白名单内的用户可见，
// 游客（viewerID 为 nil）只能看到 Everyone。
func audienceStage(viewerID *primitive.ObjectID) bson.M {
	if viewerID == nil {
		return bson.M{"$match": bson.M{"audience": model.AudienceEveryone}}
	}
	return bson.M{"$match": bson.M{
		"$or": []bson.M{
			{"audience": model.AudienceEveryone},
			{
				"audience": model.AudienceTwitterCircle,
				"$or": []bson.M{
					{"author._id": *viewerID},
					{"author.twitter_circle": *viewerID},
				},
			},
		},
	}}
}

// enrichStages 解析话题和提及，并统计收藏/点赞/转推/评论/引用数量。
// 所有计数都在查询时现算。
func enrichStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "hashtags",
			"localField":   "hashtags",
			"foreignField": "_id",
			"as":           "hashtags",
		}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "mentions",
			"foreignField": "_id",
			"as":           "mentions",
		}},
		{"$addFields": bson.M{
			"mentions": bson.M{
				"$map": bson.M{
					"input": "$mentions",
					"as":    "mention",
					"in": bson.M{
						"_id":      "$$mention._id",
						"name":     "$$mention.name",
						"username": "$$mention.username",
						"email":    "$$mention.email",
					},
				},
			},
		}},
		{"$lookup": bson.M{
			"from":         "bookmarks",
			"localField":   "_id",
			"foreignField": "tweet_id",
			"as":           "bookmarks",
		}},
		{"$lookup": bson.M{
			"from":         "likes",
			"localField":   "_id",
			"foreignField": "tweet_id",
			"as":           "likes",
		}},
		{"$lookup": bson.M{
			"from":         "tweets",
			"localField":   "_id",
			"foreignField": "parent_id",
			"as":           "tweet_children",
		}},
		{"$addFields": bson.M{
			"bookmarks":     bson.M{"$size": "$bookmarks"},
			"likes":         bson.M{"$size": "$likes"},
			"retweet_count": childCount(model.TweetTypeRetweet),
			"comment_count": childCount(model.TweetTypeComment),
			"quote_count":   childCount(model.TweetTypeQuoteTweet),
		}},
		{"$project": bson.M{
			"tweet_children": 0,
			"author": bson.M{
				"password":       0,
				"verify":         0,
				"bio":            0,
				"location":       0,
				"website":        0,
				"avatar":         0,
				"twitter_circle": 0,
				"created_at":     0,
				"updated_at":     0,
			},
		}},
	}
}

func childCount(tweetType model.TweetType) bson.M {
	return bson.M{
		"$size": bson.M{
			"$filter": bson.M{
				"input": "$tweet_children",
				"as":    "item",
				"cond":  bson.M{"$eq": []interface{}{"$$item.type", tweetType}},
			},
		},
	}
}
