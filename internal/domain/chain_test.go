package domain

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// mockAction 用于测试的 Action 实现
type mockAction struct {
	name    string
	handler func(c *NamespaceContext)
}

func (m *mockAction) Name() string {
	return m.name
}

func (m *mockAction) Handle(c *NamespaceContext) {
	if m.handler != nil {
		m.handler(c)
	}
}

func newMockAction(name string, handler func(c *NamespaceContext)) *mockAction {
	return &mockAction{
		name:    name,
		handler: handler,
	}
}

func testRequest() NamespaceRequest {
	return NamespaceRequest{Index: "docs", Namespace: "tenant-a"}
}

func TestNamespaceContext(t *testing.T) {
	t.Run("creation", func(t *testing.T) {
		c := NewNamespaceContext(context.Background(), testRequest())

		assert.Equal(t, "docs", c.Result.Index)
		assert.Equal(t, "tenant-a", c.Result.Namespace)
		assert.Empty(t, c.Result.Status)
		assert.NotNil(t, c.Metadata)
		assert.NotNil(t, c.Timings)
	})

	t.Run("set and get metadata", func(t *testing.T) {
		c := NewNamespaceContext(context.Background(), testRequest())

		c.Set("key1", "value1")
		c.Set("key2", 123)

		val1, ok1 := c.Get("key1")
		assert.True(t, ok1)
		assert.Equal(t, "value1", val1)

		val2, ok2 := c.Get("key2")
		assert.True(t, ok2)
		assert.Equal(t, 123, val2)

		_, ok3 := c.Get("nonexistent")
		assert.False(t, ok3)
	})

	t.Run("abort functionality", func(t *testing.T) {
		c := NewNamespaceContext(context.Background(), testRequest())

		assert.False(t, c.IsAborted())
		c.Abort()
		assert.True(t, c.IsAborted())
		assert.NoError(t, c.Error())
	})

	t.Run("set error marks result failed", func(t *testing.T) {
		c := NewNamespaceContext(context.Background(), testRequest())

		c.SetError(ErrLocked)

		assert.True(t, c.IsAborted())
		assert.ErrorIs(t, c.Error(), ErrLocked)
		assert.Equal(t, StatusFailed, c.Result.Status)
		assert.Equal(t, ErrLocked.Error(), c.Result.Error)
	})
}

func TestActionChain(t *testing.T) {
	t.Run("runs actions in order", func(t *testing.T) {
		var order []string
		chain := NewActionChain().Use(
			newMockAction("a", func(c *NamespaceContext) { order = append(order, "a") }),
			newMockAction("b", func(c *NamespaceContext) { order = append(order, "b") }),
			newMockAction("c", func(c *NamespaceContext) { order = append(order, "c") }),
		)

		c := NewNamespaceContext(context.Background(), testRequest())
		chain.Run(c)

		assert.Equal(t, []string{"a", "b", "c"}, order)
		assert.Len(t, c.Timings, 3)
	})

	t.Run("stops after error", func(t *testing.T) {
		var order []string
		chain := NewActionChain().Use(
			newMockAction("a", func(c *NamespaceContext) {
				order = append(order, "a")
				c.SetError(errors.New("boom"))
			}),
			newMockAction("b", func(c *NamespaceContext) { order = append(order, "b") }),
		)

		c := NewNamespaceContext(context.Background(), testRequest())
		chain.Run(c)

		assert.Equal(t, []string{"a"}, order)
		assert.EqualError(t, c.Error(), "boom")
	})

	t.Run("wrapping action sees the rest of the chain", func(t *testing.T) {
		var order []string
		chain := NewActionChain().Use(
			newMockAction("wrap", func(c *NamespaceContext) {
				order = append(order, "before")
				c.Next()
				order = append(order, "after")
			}),
			newMockAction("inner1", func(c *NamespaceContext) { order = append(order, "inner1") }),
			newMockAction("inner2", func(c *NamespaceContext) { order = append(order, "inner2") }),
		)

		c := NewNamespaceContext(context.Background(), testRequest())
		chain.Run(c)

		assert.Equal(t, []string{"before", "inner1", "inner2", "after"}, order)
	})

	t.Run("empty chain", func(t *testing.T) {
		c := NewNamespaceContext(context.Background(), testRequest())
		NewActionChain().Run(c)

		assert.NoError(t, c.Error())
		assert.False(t, c.IsAborted())
	})
}
