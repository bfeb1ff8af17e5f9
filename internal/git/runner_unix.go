//go:build !windows

package git

import (
	"os/exec"
	"syscall"
)

// configureProcess 让子进程拥有独立进程组，超时时整组终止，
// 包括 git 派生的 ssh 等仍持有输出管道的孙进程
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
