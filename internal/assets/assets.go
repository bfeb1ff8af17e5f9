// Package assets holds files bundled into the codeup binary.
package assets

import "embed"

// IgnoreTemplate 打包的 .gitignore 模板文件名
const IgnoreTemplate = "gitignore.example"

//go:embed gitignore.example
var Templates embed.FS
