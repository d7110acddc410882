package action

import "github.com/Zereker/vecns/internal/domain"

// ValidateAction rejects malformed names before any remote call.
type ValidateAction struct {
	*BaseAction
}

// NewValidateAction 创建 ValidateAction
func NewValidateAction() *ValidateAction {
	return &ValidateAction{BaseAction: NewBaseAction("validate")}
}

// Handle 校验请求
func (a *ValidateAction) Handle(c *domain.NamespaceContext) {
	if err := c.Request.Validate(); err != nil {
		a.fail(c, "invalid request", err)
	}
}
