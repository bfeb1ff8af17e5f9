//go:build windows

package git

import "os/exec"

// configureProcess keeps the default cancellation; WaitDelay still bounds
// how long Wait blocks on inherited pipes.
func configureProcess(cmd *exec.Cmd) {}
