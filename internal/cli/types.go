package cli

import "context"

// Version 语义化版本结构
type Version struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease string
}

// Tool 部署依赖的外部命令
type Tool struct {
	Name       string   // 可执行文件名称 (git, rsync)
	VersionArg string   // 输出版本号的参数
	MinVersion string   // 最低版本要求
	Required   bool     // code up 必需；否则只有 folder down 需要
	Install    []string // 安装建议
}

// ToolStatus 外部命令的检测结果
type ToolStatus struct {
	Name       string
	Installed  bool
	Version    string
	MinVersion string
	Satisfied  bool // 已安装且版本满足要求
	Required   bool
}

// CommandRunner 命令执行器接口
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (string, error)
}

// Tools 部署所用的外部命令
var Tools = []Tool{
	{
		Name:       "git",
		VersionArg: "--version",
		MinVersion: "2.0.0",
		Required:   true,
		Install: []string{
			"brew install git",
			"https://git-scm.com/downloads",
		},
	},
	{
		Name:       "rsync",
		VersionArg: "--version",
		MinVersion: "3.0.0",
		Install: []string{
			"brew install rsync",
			"apt-get install rsync",
		},
	},
}
