package domain

import (
	"context"
	"time"
)

// ============================================================================
// Action Interface - 处理链
// ============================================================================

// Action is one step of a namespace operation.
type Action interface {
	Name() string
	Handle(*NamespaceContext)
}

// ============================================================================
// NamespaceContext
// ============================================================================

// NamespaceContext carries one request through an action chain.
type NamespaceContext struct {
	context.Context

	Request NamespaceRequest
	Result  NamespaceResult

	// 元数据
	Metadata map[string]any

	// Timings records how long each action took, keyed by action name.
	Timings map[string]time.Duration

	// 链式控制
	actions []Action
	index   int
	aborted bool
	err     error
}

// NewNamespaceContext creates a context for the given request.
func NewNamespaceContext(ctx context.Context, req NamespaceRequest) *NamespaceContext {
	return &NamespaceContext{
		Context: ctx,
		Request: req,
		Result: NamespaceResult{
			Index:     req.Index,
			Namespace: req.Namespace,
		},
		Metadata: make(map[string]any),
		Timings:  make(map[string]time.Duration),
	}
}

// Set 存储元数据
func (c *NamespaceContext) Set(key string, value any) {
	c.Metadata[key] = value
}

// Get 获取元数据
func (c *NamespaceContext) Get(key string) (any, bool) {
	val, ok := c.Metadata[key]
	return val, ok
}

// Abort 终止链式执行
func (c *NamespaceContext) Abort() {
	c.aborted = true
}

// IsAborted 返回链是否被终止
func (c *NamespaceContext) IsAborted() bool {
	return c.aborted
}

// SetError records err, marks the result failed and aborts the chain.
func (c *NamespaceContext) SetError(err error) {
	c.err = err
	c.aborted = true
	c.Result.Status = StatusFailed
	c.Result.Error = err.Error()
}

// Error 返回错误
func (c *NamespaceContext) Error() error {
	return c.err
}

// Next runs the remaining actions. An action that calls Next wraps every
// action after it.
func (c *NamespaceContext) Next() {
	c.index++
	for c.index < len(c.actions) {
		if c.aborted {
			return
		}

		action := c.actions[c.index]
		start := time.Now()
		action.Handle(c)
		c.Timings[action.Name()] += time.Since(start)
		c.index++
	}
}

// ============================================================================
// Action Chain
// ============================================================================

// ActionChain 管理 Action 处理器链
type ActionChain struct {
	actions []Action
}

// NewActionChain 创建新的 Action 链
func NewActionChain() *ActionChain {
	return &ActionChain{
		actions: []Action{},
	}
}

// Use 添加 action 到链
func (chain *ActionChain) Use(actions ...Action) *ActionChain {
	chain.actions = append(chain.actions, actions...)
	return chain
}

// Run 顺序执行链中的所有 action
func (chain *ActionChain) Run(c *NamespaceContext) {
	c.actions = chain.actions
	c.index = -1
	c.Next()
}
