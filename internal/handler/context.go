package handler

type ContextKey string

var (
	RoleCtxKey ContextKey = "role"
	SubCtxKey  ContextKey = "sub"
	MyInfoCtx  ContextKey = "myInfo"
	CoachCtx   ContextKey = "coach"
	GroupCtx   ContextKey = "group"
)
