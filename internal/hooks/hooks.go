// Package hooks runs the before_deploy commands of a stage.
package hooks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/codeup/internal/errors"
	"go.uber.org/zap"
)

// Runner 命令执行器接口，git.ExecRunner 满足此接口
type Runner interface {
	Stream(ctx context.Context, w io.Writer, command string, args ...string) error
}

// Executor 按顺序执行 shell 命令
type Executor struct {
	runner Runner
	shell  string
	logger *zap.Logger
}

// NewExecutor 创建使用 sh -c 执行命令的 Executor
func NewExecutor(runner Runner, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{runner: runner, shell: "sh", logger: logger}
}

// Run executes commands in order and stops at the first failure. Output of
// every command is streamed to w.
func (e *Executor) Run(ctx context.Context, w io.Writer, commands []string) error {
	for i, command := range commands {
		command = strings.TrimSpace(command)
		if command == "" {
			continue
		}

		fmt.Fprintf(w, "$ %s\n", command)
		start := time.Now()
		err := e.runner.Stream(ctx, w, e.shell, "-c", command)
		e.logger.Debug("before_deploy command finished",
			zap.Int("index", i),
			zap.String("command", command),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))

		if err != nil {
			if errors.GetType(err) == errors.ErrTypeTimeout {
				return err
			}
			return errors.Wrap(errors.ErrTypeHook, fmt.Sprintf("before_deploy command %q failed", command), err).
				WithSuggestion("Fix the command or remove it from before_deploy in codeup.yaml")
		}
	}
	return nil
}
