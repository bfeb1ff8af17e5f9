package config

import (
	"fmt"
	"sort"

	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/provider"
)

// Lookup returns the named stage with defaults applied. An empty name picks
// the only configured stage, falling back to DefaultStageName.
func (c *Config) Lookup(name string) (string, Stage, error) {
	if name == "" {
		if len(c.Stages) == 1 {
			for only := range c.Stages {
				name = only
			}
		} else {
			name = DefaultStageName
		}
	}

	stage, ok := c.Stages[name]
	if !ok {
		return name, Stage{}, errors.Wrap(errors.ErrTypeConfig, fmt.Sprintf("stage '%s'", name), errors.ErrUnknownStage)
	}

	resolved, err := stage.Resolve()
	if err != nil {
		return name, Stage{}, err
	}
	return name, resolved, nil
}

// Names 返回排序后的 stage 名称
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Stages))
	for name := range c.Stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Identity 解析 ssh_url
func (s Stage) Identity() (provider.Identity, error) {
	return provider.ParseIdentity(s.SSHURL)
}

// Resolve 校验 ssh_url 并补全 app、git_remote、rsync_remote 的默认值
func (s Stage) Resolve() (Stage, error) {
	id, err := s.Identity()
	if err != nil {
		return s, err
	}
	if s.App == "" {
		s.App = id.App
	}
	if s.GitRemote == "" {
		s.GitRemote = id.RemoteName() + "/master"
	}
	if s.RsyncRemote == "" {
		s.RsyncRemote = id.Raw
	}
	return s, nil
}
