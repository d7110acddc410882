package action

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Zereker/vecns/internal/domain"
	"github.com/Zereker/vecns/pkg/mq"
	"github.com/Zereker/vecns/pkg/vector"
)

// Namespaces 统一的 namespace 操作入口
type Namespaces struct {
	logger      *slog.Logger
	store       vector.NamespaceStore
	locker      Locker
	queue       mq.MessageQueue
	topic       string
	concurrency int

	createChain *domain.ActionChain
	deleteChain *domain.ActionChain
}

// Option configures Namespaces.
type Option func(*Namespaces)

// WithLocker guards every create/delete with locker.
func WithLocker(locker Locker) Option {
	return func(n *Namespaces) { n.locker = locker }
}

// WithQueue publishes namespace events to topic.
func WithQueue(queue mq.MessageQueue, topic string) Option {
	return func(n *Namespaces) {
		n.queue = queue
		n.topic = topic
	}
}

// WithConcurrency bounds how many requests of a batch run at once.
func WithConcurrency(limit int) Option {
	return func(n *Namespaces) { n.concurrency = limit }
}

// NewNamespaces 创建 Namespaces 实例
func NewNamespaces(store vector.NamespaceStore, opts ...Option) *Namespaces {
	n := &Namespaces{
		logger:      slog.Default().With("module", "namespaces"),
		store:       store,
		locker:      NoopLocker{},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.concurrency < 1 {
		n.concurrency = 1
	}

	n.createChain = domain.NewActionChain().Use(
		NewValidateAction(),
		NewLockAction(n.locker),
		NewCreateAction(store),
		NewNotifyAction(n.queue, n.topic),
	)
	n.deleteChain = domain.NewActionChain().Use(
		NewValidateAction(),
		NewLockAction(n.locker),
		NewDeleteAction(store),
		NewNotifyAction(n.queue, n.topic),
	)
	return n
}

// Create creates every requested namespace.
// Results are in request order; the first failure is also returned.
func (n *Namespaces) Create(ctx context.Context, reqs ...domain.NamespaceRequest) ([]domain.NamespaceResult, error) {
	n.logger.Info("create", "count", len(reqs), "concurrency", n.concurrency)
	return n.run(ctx, n.createChain, reqs)
}

// Delete deletes every requested namespace.
func (n *Namespaces) Delete(ctx context.Context, reqs ...domain.NamespaceRequest) ([]domain.NamespaceResult, error) {
	n.logger.Info("delete", "count", len(reqs), "concurrency", n.concurrency)
	return n.run(ctx, n.deleteChain, reqs)
}

// run executes chain for every request. Requests naming the same namespace
// run one after another in request order, so a batch behaves like a
// sequential run for them whatever the concurrency.
func (n *Namespaces) run(ctx context.Context, chain *domain.ActionChain, reqs []domain.NamespaceRequest) ([]domain.NamespaceResult, error) {
	results := make([]domain.NamespaceResult, len(reqs))
	errs := make([]error, len(reqs))

	var g errgroup.Group
	g.SetLimit(n.concurrency)

	for _, group := range groupByNamespace(reqs) {
		g.Go(func() error {
			for _, i := range group {
				c := domain.NewNamespaceContext(ctx, reqs[i])
				chain.Run(c)
				n.logFinished(c)
				results[i] = c.Result
				errs[i] = c.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	// first failure in request order, not completion order
	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// groupByNamespace returns request positions grouped by index/namespace,
// groups ordered by first appearance.
func groupByNamespace(reqs []domain.NamespaceRequest) [][]int {
	pos := make(map[string]int, len(reqs))
	groups := make([][]int, 0, len(reqs))
	for i, req := range reqs {
		key := LockKey(req.Index, req.Namespace)
		g, ok := pos[key]
		if !ok {
			g = len(groups)
			pos[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func (n *Namespaces) logFinished(c *domain.NamespaceContext) {
	timings := make(map[string]string, len(c.Timings))
	for name, d := range c.Timings {
		timings[name] = d.String()
	}
	n.logger.Debug("request finished",
		"index", c.Request.Index,
		"namespace", c.Request.Namespace,
		"status", c.Result.Status,
		"timings", timings,
		"metadata", c.Metadata,
	)
}

// List 列出 index 下的 namespace
func (n *Namespaces) List(ctx context.Context, index string) ([]domain.Namespace, error) {
	if err := domain.ValidateIndexName(index); err != nil {
		return nil, err
	}

	namespaces, err := n.store.ListNamespaces(ctx, index)
	if err != nil {
		return nil, errors.WithMessage(err, "list namespaces")
	}
	return namespaces, nil
}

// Describe 查询单个 namespace
func (n *Namespaces) Describe(ctx context.Context, index, namespace string) (domain.Namespace, error) {
	req := domain.NamespaceRequest{Index: index, Namespace: namespace}
	if err := req.Validate(); err != nil {
		return domain.Namespace{}, err
	}

	ns, err := n.store.DescribeNamespace(ctx, index, namespace)
	if err != nil {
		return domain.Namespace{}, errors.WithMessage(err, "describe namespace")
	}
	return ns, nil
}
