// Package notify sends a desktop notification when a deployment finishes.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Notifier 桌面通知接口
type Notifier interface {
	Notify(title, message string) error
}

// Desktop 通过 beeep 发送系统通知
type Desktop struct {
	send   func(title, message string, icon any) error
	logger *zap.Logger
}

// New 返回 Notifier；未启用时返回不做任何事的实现
func New(enabled bool, logger *zap.Logger) Notifier {
	if !enabled {
		return Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desktop{send: beeep.Notify, logger: logger}
}

// Notify never fails the deployment; delivery errors are only logged.
func (d *Desktop) Notify(title, message string) error {
	if err := d.send(title, message, ""); err != nil {
		d.logger.Debug("Desktop notification failed", zap.Error(err))
	}
	return nil
}

// Nop 不发送通知
type Nop struct{}

func (Nop) Notify(title, message string) error { return nil }
