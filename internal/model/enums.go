package model

// TweetType 推文类型，数据库中以数字存储
type TweetType int

const (
	TweetTypeTweet TweetType = iota
	TweetTypeRetweet
	TweetTypeComment
	TweetTypeQuoteTweet
)

// IsValid 判断推文类型是否合法
func (t TweetType) IsValid() bool {
	return t >= TweetTypeTweet && t <= TweetTypeQuoteTweet
}

// TweetAudience 推文可见范围
type TweetAudience int

const (
	AudienceEveryone TweetAudience = iota
	AudienceTwitterCircle
)

// IsValid 判断可见范围是否合法
func (a TweetAudience) IsValid() bool {
	return a == AudienceEveryone || a == AudienceTwitterCircle
}

// MediaType 媒体类型
type MediaType int

const (
	MediaTypeImage MediaType = iota
	MediaTypeVideo
	MediaTypeHLS
)

// IsValid 判断媒体类型是否合法
func (m MediaType) IsValid() bool {
	return m >= MediaTypeImage && m <= MediaTypeHLS
}

// UserVerifyStatus 用户验证状态
type UserVerifyStatus int

const (
	UserUnverified UserVerifyStatus = iota
	UserVerified
	UserBanned
)

// 搜索接口使用的媒体类型查询参数
const (
	MediaQueryImage = "image"
	MediaQueryVideo = "video"
)
