package mail

import "time"

// Kind 邮件模板类型
type Kind string

const (
	KindThreadComment       Kind = "THREAD_COMMENT"
	KindPostComment         Kind = "POST_COMMENT"
	KindThreadCommentThanks Kind = "THREAD_COMMENT_THANKS"
	KindNewFollower         Kind = "NEW_FOLLOWER"
)

// 模板数据字段
const (
	DataActor     = "actor"
	DataPostTitle = "postTitle"
	DataBody      = "body"
	DataLink      = "link"
)

// Job 一封待发送的通知邮件，经 Kafka 传递
type Job struct {
	ID        string            `json:"id" bson:"id"`
	Kind      Kind              `json:"kind" bson:"kind"`
	UserID    uint64            `json:"user_id" bson:"user_id"`
	ActorID   uint64            `json:"actor_id" bson:"actor_id"`
	To        string            `json:"to" bson:"to"`
	Data      map[string]string `json:"data" bson:"data"`
	Attempt   int               `json:"attempt" bson:"attempt"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}
