package main

import (
	"context"
	"fmt"
	"os"

	"github.com/penwyp/codeup/cmd"
	"github.com/penwyp/codeup/internal/errors"
)

// main 为 CLI 入口，调用 cmd.ExecuteContext。
func main() {
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}

	// 已在控制台渲染过的错误（如 push 失败）与用户主动放弃不再重复输出
	if !errors.IsReported(err) && errors.GetType(err) != errors.ErrTypeDeclined {
		handler := errors.NewErrorHandler()
		fmt.Fprint(os.Stderr, handler.Format(handler.Handle(err)))
	}
	os.Exit(errors.ExitCodeFor(err))
}
