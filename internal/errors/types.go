package errors

// Exit codes returned by the codeup binary
const (
	ExitCodeOK               = 0   // 成功，或用户主动放弃且没有待执行的危险操作
	ExitCodeUnspecifiedError = 1   // 中止、校验失败、push 失败
	ExitCodeTimeout          = 124 // Standard timeout exit code
)

// Report 面向终端输出的错误描述
type Report struct {
	Message    string // 用户友好的错误消息
	Details    string // 底层工具输出（可选）
	Suggestion string // 建议的解决方案
	ExitCode   int    // 退出码
}
