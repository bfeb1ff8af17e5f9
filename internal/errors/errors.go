package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorType 定义错误类型
type ErrorType int

const (
	// ErrTypeUnknown 未知错误
	ErrTypeUnknown ErrorType = iota
	// ErrTypeGit git 子进程返回非零状态
	ErrTypeGit
	// ErrTypeConfig 配置相关错误
	ErrTypeConfig
	// ErrTypeValidation 校验失败，例如不合法的托管 SSH 标识
	ErrTypeValidation
	// ErrTypeTimeout 子进程超时
	ErrTypeTimeout
	// ErrTypeIO 文件读写错误，例如缺少打包的模板
	ErrTypeIO
	// ErrTypeHook before-deploy 命令失败
	ErrTypeHook
	// ErrTypeAborted 用户拒绝了必需的输入
	ErrTypeAborted
	// ErrTypeDeclined 用户拒绝确认，但没有待执行的操作
	ErrTypeDeclined
	// ErrTypeNotSupported 尚未支持的命令
	ErrTypeNotSupported
)

// CodeupError 统一错误结构
type CodeupError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	// Reported is set once the error has already been rendered to the
	// terminal, so the process edge only needs the exit code.
	Reported bool
}

// Error 实现 error 接口
func (e *CodeupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap 支持 errors.Is 和 errors.As
func (e *CodeupError) Unwrap() error {
	return e.Cause
}

// WithSuggestion 添加解决建议
func (e *CodeupError) WithSuggestion(suggestion string) *CodeupError {
	e.Suggestion = suggestion
	return e
}

// New 创建新的 CodeupError
func New(errType ErrorType, message string) *CodeupError {
	return &CodeupError{
		Type:    errType,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(errType ErrorType, message string, cause error) *CodeupError {
	return &CodeupError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// MarkReported wraps err so that the caller knows it has already been shown
// to the user. The original error stays reachable through errors.Is/As.
func MarkReported(err error) error {
	if err == nil {
		return nil
	}
	return &CodeupError{
		Type:     GetType(err),
		Message:  "reported",
		Cause:    err,
		Reported: true,
	}
}

// 预定义的常见错误
var (
	ErrDeclined      = New(ErrTypeDeclined, "declined by user")
	ErrAborted       = New(ErrTypeAborted, "aborted")
	ErrCommitAborted = New(ErrTypeAborted, "commit aborted, no commit message given")
	ErrNotSupported  = New(ErrTypeNotSupported, "not supported yet")

	ErrInvalidIdentity = New(ErrTypeValidation, "invalid hosting SSH identity").
				WithSuggestion("ssh_url must follow the pattern {app}@deploy.{region}.frbit.com")
	ErrTemplateMissing = New(ErrTypeIO, "unable to read .gitignore.example")
	ErrUnknownStage    = New(ErrTypeConfig, "stage not configured").
				WithSuggestion("run 'codeup init <stage>' to create it")
)

// Is 检查是否为特定错误
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As 尝试转换为特定错误类型
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetType 获取错误类型
func GetType(err error) ErrorType {
	var codeupErr *CodeupError
	if errors.As(err, &codeupErr) {
		return codeupErr.Type
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTypeTimeout
	}
	return ErrTypeUnknown
}

// IsReported 检查错误是否已经输出给用户
func IsReported(err error) bool {
	var codeupErr *CodeupError
	if errors.As(err, &codeupErr) {
		return codeupErr.Reported
	}
	return false
}

// GetSuggestion 获取错误建议
func GetSuggestion(err error) string {
	var codeupErr *CodeupError
	for errors.As(err, &codeupErr) {
		if codeupErr.Suggestion != "" {
			return codeupErr.Suggestion
		}
		err = codeupErr.Cause
		if err == nil {
			break
		}
	}
	return ""
}

// ExitCodeFor maps an error returned by a command to the process exit code.
// A declined confirmation with nothing pending counts as success.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	switch GetType(err) {
	case ErrTypeDeclined:
		return ExitCodeOK
	case ErrTypeTimeout:
		return ExitCodeTimeout
	default:
		return ExitCodeUnspecifiedError
	}
}

// FormatError 格式化错误输出
func FormatError(err error) string {
	var codeupErr *CodeupError
	if !errors.As(err, &codeupErr) {
		return err.Error()
	}

	msg := codeupErr.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += fmt.Sprintf("\n💡 %s", suggestion)
	}

	return msg
}
