package action

import (
	"log/slog"

	"github.com/Zereker/vecns/internal/domain"
)

// BaseAction 提供 Action 的公共能力
type BaseAction struct {
	name   string
	logger *slog.Logger
}

// NewBaseAction 创建 BaseAction
func NewBaseAction(name string) *BaseAction {
	return &BaseAction{
		name:   name,
		logger: slog.Default().With("module", name),
	}
}

// Name 返回 action 名称
func (b *BaseAction) Name() string {
	return b.name
}

// fail logs err with the request scope and aborts the chain.
func (b *BaseAction) fail(c *domain.NamespaceContext, msg string, err error) {
	b.logger.Error(msg,
		"index", c.Request.Index,
		"namespace", c.Request.Namespace,
		"error", err,
	)
	c.SetError(err)
}
