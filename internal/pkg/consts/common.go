package consts

// canal binlog 事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

// CDC 关注的表
const (
	TablePosts       = "posts"
	TablePostClaps   = "post_claps"
	TableUserFollows = "user_follows"
)
