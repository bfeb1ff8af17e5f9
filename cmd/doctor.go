package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/penwyp/codeup/internal/cli"
	"github.com/penwyp/codeup/internal/config"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/git"
	"github.com/spf13/cobra"
)

// ToolDetector 外部命令检测器接口
type ToolDetector interface {
	DetectAll(ctx context.Context) []cli.ToolStatus
	SuggestInstallCommand(name string) []string
}

// StageStatus 单个 stage 的检查结果
type StageStatus struct {
	Stage   string
	App     string
	Remote  string
	Status  string
	Healthy bool
}

var detectorProvider = func(runner cli.CommandRunner) ToolDetector {
	return cli.NewDetector(runner)
}

func newDoctorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that git, rsync and the stage configuration are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			detector := detectorProvider(a.runner)
			tools := detector.DetectAll(ctx)
			fmt.Fprintln(out, formatToolTable(tools))

			missing := false
			for _, tool := range tools {
				if tool.Satisfied {
					continue
				}
				if tool.Required {
					missing = true
				}
				if suggestions := detector.SuggestInstallCommand(tool.Name); len(suggestions) > 0 {
					fmt.Fprintf(out, "%s:\n", tool.Name)
					for _, suggestion := range suggestions {
						fmt.Fprintf(out, "  %s\n", suggestion)
					}
				}
			}

			stages, err := a.stageStatuses(ctx)
			if err != nil {
				fmt.Fprintln(out, color.YellowString("Config: %s", errors.FormatError(err)))
			} else {
				fmt.Fprintln(out, formatStageTable(stages))
			}

			if missing {
				return errors.New(errors.ErrTypeConfig, "required tools are missing or outdated")
			}
			return nil
		},
	}
}

// stageStatuses 检查每个 stage 的 ssh_url 及对应的 git remote
func (a *app) stageStatuses(ctx context.Context) ([]StageStatus, error) {
	manager, err := config.NewYAMLConfigManager(a.settings.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := manager.Load()
	if err != nil {
		return nil, errors.Wrap(errors.ErrTypeConfig, "unable to read "+a.settings.ConfigPath, err)
	}

	var remotes []git.Remote
	if a.vcs.IsRepository() {
		remotes, _ = a.vcs.Remotes(ctx)
	}

	var statuses []StageStatus
	for _, name := range cfg.Names() {
		status := StageStatus{Stage: name, App: "-", Remote: "-"}
		stage, err := cfg.Stages[name].Resolve()
		if err != nil {
			status.Status = "✗ Invalid ssh_url"
			statuses = append(statuses, status)
			continue
		}

		status.App = stage.App
		status.Remote = strings.SplitN(stage.GitRemote, "/", 2)[0]
		if hasRemoteNamed(remotes, status.Remote) {
			status.Status = "✓ Ready"
		} else {
			status.Status = "✓ Remote added on first deploy"
		}
		status.Healthy = true
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func hasRemoteNamed(remotes []git.Remote, name string) bool {
	for _, r := range remotes {
		if r.Name == name {
			return true
		}
	}
	return false
}

// formatToolTable 格式化外部命令检测结果
func formatToolTable(tools []cli.ToolStatus) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Tool\tVersion\tMinimum\tStatus\n")
	fmt.Fprintf(w, "----\t-------\t-------\t------\n")
	for _, tool := range tools {
		version := tool.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tool.Name, version, tool.MinVersion, toolStatusText(tool))
	}

	w.Flush()
	return sb.String()
}

func toolStatusText(tool cli.ToolStatus) string {
	switch {
	case !tool.Installed && tool.Required:
		return color.RedString("✗ Not installed")
	case !tool.Installed:
		return color.YellowString("✗ Not installed (folder down only)")
	case !tool.Satisfied:
		return color.RedString("✗ Outdated")
	default:
		return color.GreenString("✓ OK")
	}
}

// formatStageTable 格式化 stage 检查结果
func formatStageTable(stages []StageStatus) string {
	if len(stages) == 0 {
		return "No stages configured"
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Stage\tApp\tRemote\tStatus\n")
	fmt.Fprintf(w, "-----\t---\t------\t------\n")
	for _, s := range stages {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Stage, s.App, s.Remote, formatStageStatus(s))
	}

	w.Flush()
	return sb.String()
}

func formatStageStatus(s StageStatus) string {
	if s.Healthy {
		return color.GreenString(s.Status)
	}
	return color.RedString(s.Status)
}
