package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorHandler 把底层错误转换为面向用户的 Report
type ErrorHandler struct{}

// NewErrorHandler 创建新的错误处理器
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle 根据错误内容生成结构化的 Report
func (h *ErrorHandler) Handle(err error) Report {
	if err == nil {
		return Report{ExitCode: ExitCodeOK}
	}

	errStr := err.Error()
	exitCode := ExitCodeFor(err)

	if GetType(err) == ErrTypeTimeout {
		return Report{
			Message:    "git did not finish in time",
			Details:    errStr,
			Suggestion: "Check your network connection, the subprocess limit is 300 seconds",
			ExitCode:   exitCode,
		}
	}

	// SSH 认证失败
	if strings.Contains(errStr, "Permission denied (publickey") {
		return Report{
			Message:    "SSH authentication failed",
			Details:    errStr,
			Suggestion: "Make sure your public SSH key is added to your fortrabbit account",
			ExitCode:   exitCode,
		}
	}

	// 网络错误
	if strings.Contains(errStr, "Could not resolve hostname") ||
		strings.Contains(errStr, "Connection refused") ||
		strings.Contains(errStr, "Connection timed out") {
		return Report{
			Message:    "Unable to reach the deployment host",
			Details:    errStr,
			Suggestion: "Check your internet connection and the ssh_url of the stage",
			ExitCode:   exitCode,
		}
	}

	// push 被拒绝
	if strings.Contains(errStr, "[rejected]") || strings.Contains(errStr, "non-fast-forward") {
		return Report{
			Message:    "The remote rejected the push",
			Details:    errStr,
			Suggestion: "Pull the remote changes first:\n  git pull <remote> master",
			ExitCode:   exitCode,
		}
	}

	// remote 不存在
	if strings.Contains(errStr, "does not appear to be a git repository") {
		remoteName := extractRemoteName(errStr)
		return Report{
			Message:    fmt.Sprintf("Git remote '%s' not found", remoteName),
			Suggestion: "Check git_remote in codeup.yaml or run: git remote -v",
			ExitCode:   exitCode,
		}
	}

	return Report{
		Message:    errStr,
		Suggestion: GetSuggestion(err),
		ExitCode:   exitCode,
	}
}

// Format 格式化 Report 为用户友好的输出
func (h *ErrorHandler) Format(report Report) string {
	var sb strings.Builder

	// 错误消息（红色）
	sb.WriteString(color.RedString("Error: %s\n", report.Message))

	// 详细信息（如果有）
	if report.Details != "" {
		sb.WriteString(color.YellowString("Details: %s\n", report.Details))
	}

	// 建议（如果有）
	if report.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(report.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// extractRemoteName 从 "'foo' does not appear to be a git repository" 中提取 "foo"
func extractRemoteName(errStr string) string {
	start := strings.Index(errStr, "'")
	if start == -1 {
		return "unknown"
	}
	end := strings.Index(errStr[start+1:], "'")
	if end == -1 {
		return "unknown"
	}
	return errStr[start+1 : start+1+end]
}
