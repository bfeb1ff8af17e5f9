package provider

import (
	"strings"

	"github.com/penwyp/codeup/internal/errors"
)

// ParseIdentity 校验并解析托管 SSH 标识。
// 标识必须包含 frbit.com，且 @ 之前的应用名不能为空。
func ParseIdentity(sshURL string) (Identity, error) {
	sshURL = strings.TrimSpace(sshURL)
	if !strings.Contains(sshURL, HostingDomain) {
		return Identity{}, errors.ErrInvalidIdentity
	}

	at := strings.Index(sshURL, "@")
	if at <= 0 {
		return Identity{}, errors.ErrInvalidIdentity
	}

	id := Identity{
		App:  sshURL[:at],
		Host: sshURL[at+1:],
		Raw:  sshURL,
	}

	// 格式: deploy.{region}.frbit.com
	host := strings.TrimSuffix(id.Host, "."+HostingDomain)
	if rest, ok := strings.CutPrefix(host, "deploy."); ok && rest != host && !strings.Contains(rest, ".") {
		id.Region = rest
	}

	return id, nil
}

// RemoteName 返回 git remote 名称
func (i Identity) RemoteName() string {
	return i.App
}

// RemoteURL 返回 git remote 地址 <ssh>:<app>.git
func (i Identity) RemoteURL() string {
	return i.Raw + ":" + i.App + ".git"
}

// Domain 返回应用的公开域名
func (i Identity) Domain() string {
	return i.App + AppDomainSuffix
}
