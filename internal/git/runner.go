package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/penwyp/codeup/internal/errors"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every subprocess started by ExecRunner.
const DefaultTimeout = 300 * time.Second

// waitDelay 超时后等待子进程关闭输出管道的最长时间
const waitDelay = 2 * time.Second

// CommandError 子进程返回非零状态时的错误，Output 保留工具自身的输出
type CommandError struct {
	Command string
	Args    []string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return out
	}
	return fmt.Sprintf("%s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner 使用 os/exec 实际执行系统命令
type ExecRunner struct {
	Dir     string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewExecRunner 创建在 dir 中执行命令的 Runner
func NewExecRunner(dir string, timeout time.Duration, logger *zap.Logger) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{Dir: dir, Timeout: timeout, Logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, command string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	err := r.exec(ctx, &stdout, &stderr, command, args...)
	if err != nil {
		var ce *CommandError
		if errors.As(err, &ce) {
			ce.Output = stderr.String()
			if strings.TrimSpace(ce.Output) == "" {
				ce.Output = stdout.String()
			}
		}
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// Stream 把 stdout 与 stderr 都写入 w；stderr 另存一份作为失败时的错误信息
func (r *ExecRunner) Stream(ctx context.Context, w io.Writer, command string, args ...string) error {
	var stderr bytes.Buffer
	err := r.exec(ctx, w, io.MultiWriter(w, &stderr), command, args...)
	if err != nil {
		var ce *CommandError
		if errors.As(err, &ce) {
			ce.Output = stderr.String()
		}
	}
	return err
}

func (r *ExecRunner) exec(ctx context.Context, stdout, stderr io.Writer, command string, args ...string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)

	start := time.Now()
	err := cmd.Run()
	r.logger().Debug("Command finished",
		zap.String("command", command),
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))

	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrTypeTimeout,
			fmt.Sprintf("%s %s timed out after %s", command, strings.Join(args, " "), timeout),
			context.DeadlineExceeded)
	}
	if err != nil {
		return &CommandError{Command: command, Args: args, Err: err}
	}
	return nil
}

func (r *ExecRunner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
