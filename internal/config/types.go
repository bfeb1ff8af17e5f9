package config

// DefaultFileName 配置文件默认名称，位于项目根目录
const DefaultFileName = "codeup.yaml"

// DefaultStageName 未指定 stage 且无法推断时使用的名称
const DefaultStageName = "production"

// Config 配置文件结构
type Config struct {
	Version string           `json:"version" yaml:"version"`
	Stages  map[string]Stage `json:"stages" yaml:"stages"`
}

// Stage 一个部署目标的配置
type Stage struct {
	App          string   `json:"app,omitempty" yaml:"app,omitempty"`                     // 应用名称，为空时从 ssh_url 推断
	SSHURL       string   `json:"ssh_url" yaml:"ssh_url"`                                 // 托管 SSH 标识，如 my-app@deploy.eu2.frbit.com
	GitRemote    string   `json:"git_remote,omitempty" yaml:"git_remote,omitempty"`       // remote/branch，如 my-app/master
	RsyncRemote  string   `json:"rsync_remote,omitempty" yaml:"rsync_remote,omitempty"`   // rsync 远端，为空时使用 ssh_url
	BeforeDeploy []string `json:"before_deploy,omitempty" yaml:"before_deploy,omitempty"` // 部署前按顺序执行的命令
}

// Manager 配置管理器接口
type Manager interface {
	// Path 返回配置文件路径
	Path() string

	// Load 加载配置文件
	Load() (*Config, error)

	// Save 保存配置文件（原子操作）
	Save(config *Config) error

	// CreateDefaultConfig 创建只包含一个 stage 的默认配置
	CreateDefaultConfig(name string, stage Stage) error

	// UpdateStage 更新指定 stage 的配置
	UpdateStage(name string, stage Stage) error
}
