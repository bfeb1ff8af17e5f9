package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	versionRegex = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([^+\s]+))?(?:\+\S+)?$`)
	// "git version 2.43.0" / "rsync  version 3.2.7  protocol version 31"
	embeddedVersionRegex = regexp.MustCompile(`version\s+v?(\d+\.\d+(?:\.\d+)?)`)
)

// ParseVersion 解析语义化版本字符串，缺失的 minor/patch 视为 0
func ParseVersion(versionStr string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(strings.TrimSpace(versionStr))
	if matches == nil {
		return Version{}, fmt.Errorf("invalid version format: %q", versionStr)
	}

	var v Version
	parts := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, p := range parts {
		if matches[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q: %w", matches[i+1], err)
		}
		*p = n
	}
	v.PreRelease = matches[4]
	return v, nil
}

// ExtractVersion 从工具的 --version 输出中提取版本号
func ExtractVersion(output string) (string, error) {
	matches := embeddedVersionRegex.FindStringSubmatch(output)
	if len(matches) < 2 {
		return "", fmt.Errorf("version not found in output")
	}
	return matches[1], nil
}

// Compare 返回: -1 (v < o), 0 (v == o), 1 (v > o)
func (v Version) Compare(o Version) int {
	for _, d := range []int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		if d > 0 {
			return 1
		}
		if d < 0 {
			return -1
		}
	}

	// 没有预发布版本的版本高于有预发布版本的
	switch {
	case v.PreRelease == o.PreRelease:
		return 0
	case v.PreRelease == "":
		return 1
	case o.PreRelease == "":
		return -1
	}
	return strings.Compare(v.PreRelease, o.PreRelease)
}

// CompareVersions 比较两个版本字符串，解析失败时退化为字符串比较
func CompareVersions(v1Str, v2Str string) int {
	v1, err1 := ParseVersion(v1Str)
	v2, err2 := ParseVersion(v2Str)
	if err1 != nil || err2 != nil {
		return strings.Compare(v1Str, v2Str)
	}
	return v1.Compare(v2)
}

// CheckMinVersion 检查当前版本是否满足最低版本要求
func CheckMinVersion(current, minimum string) (bool, error) {
	cur, err := ParseVersion(current)
	if err != nil {
		return false, fmt.Errorf("invalid current version: %w", err)
	}
	floor, err := ParseVersion(minimum)
	if err != nil {
		return false, fmt.Errorf("invalid minimum version: %w", err)
	}
	return cur.Compare(floor) >= 0, nil
}
