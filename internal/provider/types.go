package provider

// HostingDomain 托管 SSH 标识必须包含的域名
const HostingDomain = "frbit.com"

// AppDomainSuffix 应用公开域名的后缀
const AppDomainSuffix = ".frb.io"

// Identity 解析后的托管 SSH 标识，如 my-app@deploy.eu2.frbit.com
type Identity struct {
	App    string // @ 之前的部分，同时也是 git remote 名称
	Host   string // @ 之后的部分，如 deploy.eu2.frbit.com
	Region string // 区域，如 eu2；无法识别时为空
	Raw    string // 原始标识
}
