package action

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Zereker/vecns/internal/domain"
)

// Locker guards a namespace against concurrent runs.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, ok bool, err error)
}

// NoopLocker always succeeds. Used when redis is disabled.
type NoopLocker struct{}

// Acquire 总是成功
func (NoopLocker) Acquire(context.Context, string) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

// LockKey returns the lock key of a namespace.
func LockKey(index, namespace string) string {
	return fmt.Sprintf("vecns:lock:%s:%s", index, namespace)
}

// LockAction holds the namespace lock for the rest of the chain.
type LockAction struct {
	*BaseAction
	locker Locker
}

// NewLockAction 创建 LockAction
func NewLockAction(locker Locker) *LockAction {
	if locker == nil {
		locker = NoopLocker{}
	}
	return &LockAction{
		BaseAction: NewBaseAction("lock"),
		locker:     locker,
	}
}

// Handle 加锁，执行后续 action，释放锁
func (a *LockAction) Handle(c *domain.NamespaceContext) {
	key := LockKey(c.Request.Index, c.Request.Namespace)

	release, ok, err := a.locker.Acquire(c, key)
	if err != nil {
		a.fail(c, "acquire lock failed", err)
		return
	}
	if !ok {
		a.fail(c, "namespace locked", errors.Wrap(domain.ErrLocked, key))
		return
	}

	defer func() {
		// release even if the run context was cancelled
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c), 5*time.Second)
		defer cancel()
		if err := release(ctx); err != nil {
			a.logger.Warn("release lock failed", "key", key, "error", err)
		}
	}()

	c.Next()
}
