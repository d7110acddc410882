package action

import (
	"github.com/pkg/errors"

	"github.com/Zereker/vecns/internal/domain"
	"github.com/Zereker/vecns/pkg/vector"
)

// CreateAction creates the namespace in the store.
type CreateAction struct {
	*BaseAction
	store vector.NamespaceStore
}

// NewCreateAction 创建 CreateAction
func NewCreateAction(store vector.NamespaceStore) *CreateAction {
	return &CreateAction{
		BaseAction: NewBaseAction("create"),
		store:      store,
	}
}

// Handle 创建 namespace
func (a *CreateAction) Handle(c *domain.NamespaceContext) {
	err := a.store.CreateNamespace(c, c.Request.Index, c.Request.Namespace)
	switch {
	case err == nil:
		c.Result.Status = domain.StatusCreated
		a.logger.Info("namespace created", "index", c.Request.Index, "namespace", c.Request.Namespace)
	case c.Request.IfNotExists && errors.Is(err, domain.ErrNamespaceExists):
		c.Result.Status = domain.StatusExists
		a.logger.Info("namespace already exists", "index", c.Request.Index, "namespace", c.Request.Namespace)
	default:
		a.fail(c, "create namespace failed", errors.WithMessage(err, "create namespace"))
	}
}

// DeleteAction deletes the namespace from the store.
type DeleteAction struct {
	*BaseAction
	store vector.NamespaceStore
}

// NewDeleteAction 创建 DeleteAction
func NewDeleteAction(store vector.NamespaceStore) *DeleteAction {
	return &DeleteAction{
		BaseAction: NewBaseAction("delete"),
		store:      store,
	}
}

// Handle 删除 namespace
func (a *DeleteAction) Handle(c *domain.NamespaceContext) {
	if err := a.store.DeleteNamespace(c, c.Request.Index, c.Request.Namespace); err != nil {
		a.fail(c, "delete namespace failed", errors.WithMessage(err, "delete namespace"))
		return
	}

	c.Result.Status = domain.StatusDeleted
	a.logger.Info("namespace deleted", "index", c.Request.Index, "namespace", c.Request.Namespace)
}
