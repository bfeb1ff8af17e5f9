package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/penwyp/codeup/internal/config"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/git"
	"github.com/penwyp/codeup/internal/logger"
	"github.com/penwyp/codeup/internal/notify"
	"github.com/penwyp/codeup/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version holds the current version of codeup
// This will be set at build time via ldflags
var version = "dev"

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("codeup version %s", version)
}

// 将关键依赖抽象为 provider 以便测试时注入 fake。
// 若在运行时未被替换，则使用默认实现。
var (
	runnerProvider   func(dir string, timeout time.Duration, logger *zap.Logger) git.Runner = defaultRunnerProvider
	vcsProvider      func(dir string, runner git.Runner) git.VersionControlClient         = defaultVCSProvider
	prompterProvider func(interactive bool, in io.Reader, out io.Writer) ui.Prompter      = defaultPrompterProvider
	notifierProvider func(enabled bool, logger *zap.Logger) notify.Notifier               = notify.New
	stdinIsTerminal  func() bool                                                          = func() bool { return term.IsTerminal(os.Stdin.Fd()) }
)

func defaultRunnerProvider(dir string, timeout time.Duration, logger *zap.Logger) git.Runner {
	return git.NewExecRunner(dir, timeout, logger)
}

func defaultVCSProvider(dir string, runner git.Runner) git.VersionControlClient {
	return git.NewClient(dir, runner)
}

func defaultPrompterProvider(interactive bool, in io.Reader, out io.Writer) ui.Prompter {
	if !interactive {
		return ui.NonInteractivePrompter{}
	}
	return ui.NewTerminalPrompter(in, out)
}

// settings 运行时设置，来源依次为命令行参数、CODEUP_* 环境变量、默认值
type settings struct {
	ConfigPath    string
	Debug         bool
	NoInteraction bool
	Timeout       time.Duration
	Notify        bool
}

// settingKeys maps viper keys to flag names.
var settingKeys = map[string]string{
	"config":         "config",
	"debug":          "debug",
	"no_interaction": "no-interaction",
	"timeout":        "timeout",
	"notify":         "notify",
}

func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("CODEUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, name := range settingKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return v, nil
}

func loadSettings(v *viper.Viper) settings {
	s := settings{
		ConfigPath:    v.GetString("config"),
		Debug:         v.GetBool("debug"),
		NoInteraction: v.GetBool("no_interaction"),
		Timeout:       v.GetDuration("timeout"),
		Notify:        v.GetBool("notify"),
	}
	if s.ConfigPath == "" {
		s.ConfigPath = config.DefaultFileName
	}
	if s.Timeout <= 0 {
		s.Timeout = git.DefaultTimeout
	}
	return s
}

// app 一次命令执行共享的依赖，在 PersistentPreRunE 中装配
type app struct {
	settings settings
	logger   *zap.Logger
	dir      string
	runner   git.Runner
	vcs      git.VersionControlClient
	prompter ui.Prompter
	console  *ui.Console
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return err
	}
	a.settings = loadSettings(v)

	a.logger, err = logger.New(a.settings.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.dir, err = os.Getwd()
	if err != nil {
		return errors.Wrap(errors.ErrTypeIO, "unable to determine working directory", err)
	}

	interactive := !a.settings.NoInteraction && stdinIsTerminal()
	a.logger.Debug("Settings loaded",
		zap.String("config", a.settings.ConfigPath),
		zap.Duration("timeout", a.settings.Timeout),
		zap.Bool("interactive", interactive))

	a.runner = runnerProvider(a.dir, a.settings.Timeout, a.logger)
	a.vcs = vcsProvider(a.dir, a.runner)
	a.prompter = prompterProvider(interactive, cmd.InOrStdin(), cmd.OutOrStdout())
	a.console = ui.NewConsole(cmd.OutOrStdout())
	return nil
}

// loadStage 读取配置文件并返回指定 stage，name 为空时选择默认 stage
func (a *app) loadStage(name string) (string, config.Stage, error) {
	manager, err := config.NewYAMLConfigManager(a.settings.ConfigPath)
	if err != nil {
		return "", config.Stage{}, err
	}
	cfg, err := manager.Load()
	if err != nil {
		if os.IsNotExist(err) {
			return "", config.Stage{}, errors.Wrap(errors.ErrTypeConfig,
				fmt.Sprintf("config file %s not found", a.settings.ConfigPath), err).
				WithSuggestion("run 'codeup init <stage> --ssh-url {app}@deploy.{region}.frbit.com' first")
		}
		return "", config.Stage{}, err
	}
	return cfg.Lookup(name)
}

// NewRootCommand 构建完整的命令树
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "codeup",
		Short: "Push local code changes to a git based hosting target",
		Long: `codeup deploys a project to a git based hosting target such as
{app}@deploy.{region}.frbit.com.

It initializes the repository when needed, lets you pick the branch, commits
pending changes, runs the stage's before_deploy commands and pushes to the
remote master branch.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetVersionTemplate(GetVersionString() + "\n")

	flags := root.PersistentFlags()
	flags.String("config", config.DefaultFileName, "path to the stage configuration file")
	flags.Bool("debug", false, "enable debug output for troubleshooting")
	flags.BoolP("no-interaction", "n", false, "never prompt, use default answers")
	flags.Duration("timeout", git.DefaultTimeout, "timeout for every git, rsync and hook command")
	flags.Bool("notify", false, "show a desktop notification when a deployment finishes")

	root.AddCommand(
		newCodeCommand(a),
		newFolderCommand(a),
		newDbCommand(a),
		newInitCommand(a),
		newDoctorCommand(a),
		newVersionCommand(),
	)
	return root
}

func Execute() error { return NewRootCommand().Execute() }

func ExecuteContext(ctx context.Context) error { return NewRootCommand().ExecuteContext(ctx) }
