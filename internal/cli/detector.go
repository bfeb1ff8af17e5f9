package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/penwyp/codeup/internal/errors"
)

// Detector 外部命令检测器
type Detector struct {
	runner CommandRunner
	tools  []Tool
}

// NewDetector 创建新的检测器，tools 为空时使用 Tools
func NewDetector(runner CommandRunner, tools ...Tool) *Detector {
	if len(tools) == 0 {
		tools = Tools
	}
	return &Detector{runner: runner, tools: tools}
}

// Detect 检测单个命令的安装状态与版本
func (d *Detector) Detect(ctx context.Context, tool Tool) ToolStatus {
	status := ToolStatus{
		Name:       tool.Name,
		MinVersion: tool.MinVersion,
		Required:   tool.Required,
	}

	output, err := d.runner.Run(ctx, tool.Name, tool.VersionArg)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || strings.Contains(err.Error(), "executable file not found") {
			return status
		}
		// 命令存在但执行失败
		status.Installed = true
		return status
	}
	status.Installed = true

	version, err := ExtractVersion(output)
	if err != nil {
		return status
	}
	status.Version = version

	ok, err := CheckMinVersion(version, tool.MinVersion)
	status.Satisfied = err == nil && ok
	return status
}

// DetectAll 按顺序检测所有命令
func (d *Detector) DetectAll(ctx context.Context) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(d.tools))
	for _, tool := range d.tools {
		statuses = append(statuses, d.Detect(ctx, tool))
	}
	return statuses
}

// Require 在命令缺失或版本过低时返回带安装建议的错误
func (d *Detector) Require(ctx context.Context, name string) error {
	tool, ok := d.lookup(name)
	if !ok {
		return fmt.Errorf("unknown tool: %s", name)
	}

	status := d.Detect(ctx, tool)
	if !status.Installed {
		return errors.New(errors.ErrTypeConfig, fmt.Sprintf("%s is not installed", name)).
			WithSuggestion("Install with: " + strings.Join(d.SuggestInstallCommand(name), " or "))
	}
	if status.Version != "" && !status.Satisfied {
		return errors.New(errors.ErrTypeConfig,
			fmt.Sprintf("%s %s is older than the required %s", name, status.Version, tool.MinVersion))
	}
	return nil
}

// SuggestInstallCommand 建议安装命令
func (d *Detector) SuggestInstallCommand(name string) []string {
	if tool, ok := d.lookup(name); ok {
		return tool.Install
	}
	return []string{}
}

func (d *Detector) lookup(name string) (Tool, bool) {
	for _, tool := range d.tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}
