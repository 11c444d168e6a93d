package util

// gin.Context 中的键
const (
	ContextUserKey   = "user"
	ContextConfigKey = "config"
)

// 评测结果提示语
const (
	MsgAllPassed      = "All tests passed!"
	MsgSomeFailed     = "One or more tests failed."
	MsgExecutorFailed = "API execution error. Please check the server logs."
)
